package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"organix/internal/overlay"
)

// fixedSizeLayout pins its first object to a fixed size.
type fixedSizeLayout struct {
	width  float32
	height float32
}

func (l *fixedSizeLayout) Layout(objects []fyne.CanvasObject, _ fyne.Size) {
	if len(objects) > 0 {
		objects[0].Resize(fyne.NewSize(l.width, l.height))
		objects[0].Move(fyne.NewPos(0, 0))
	}
}

func (l *fixedSizeLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(l.width, l.height)
}

// styledButton is a flat button with fixed colours.
type styledButton struct {
	widget.BaseWidget
	text      string
	textColor color.Color
	bgColor   color.Color
	onTapped  func()
}

func newStyledButton(text string, textColor, bgColor color.Color, onTapped func()) *styledButton {
	b := &styledButton{
		text:      text,
		textColor: textColor,
		bgColor:   bgColor,
		onTapped:  onTapped,
	}
	b.ExtendBaseWidget(b)
	return b
}

func (b *styledButton) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(b.bgColor)
	rect.CornerRadius = 6
	rect.SetMinSize(fyne.NewSize(150, 35))

	textObj := canvas.NewText(b.text, b.textColor)
	textObj.Alignment = fyne.TextAlignCenter
	textObj.TextSize = 14
	textObj.TextStyle = fyne.TextStyle{Bold: true}

	return &styledButtonRenderer{
		button:  b,
		rect:    rect,
		textObj: textObj,
		content: container.NewStack(rect, container.NewCenter(textObj)),
	}
}

func (b *styledButton) Tapped(*fyne.PointEvent) {
	if b.onTapped != nil {
		b.onTapped()
	}
}

type styledButtonRenderer struct {
	button  *styledButton
	rect    *canvas.Rectangle
	textObj *canvas.Text
	content fyne.CanvasObject
}

func (r *styledButtonRenderer) Layout(size fyne.Size) {
	r.content.Resize(size)
}

func (r *styledButtonRenderer) MinSize() fyne.Size {
	return r.content.MinSize()
}

func (r *styledButtonRenderer) Refresh() {
	r.rect.FillColor = r.button.bgColor
	r.textObj.Color = r.button.textColor
	r.textObj.Text = r.button.text
	r.rect.Refresh()
	r.textObj.Refresh()
}

func (r *styledButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content}
}

func (r *styledButtonRenderer) Destroy() {}

// variantTheme forces the default theme into the light or dark variant.
type variantTheme struct {
	fyne.Theme
	dark bool
}

func newVariantTheme(dark bool) *variantTheme {
	return &variantTheme{Theme: theme.DefaultTheme(), dark: dark}
}

func (t *variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	v := theme.VariantLight
	if t.dark {
		v = theme.VariantDark
	}
	if name == theme.ColorNamePrimary {
		return overlay.Primary(t.dark)
	}
	return t.Theme.Color(name, v)
}
