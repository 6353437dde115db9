package shader

// Octaves is the number of noise layers summed by fbm.
const Octaves = 6

// Uniform names shared by the GLSL sources and the program.
const (
	uniformTime       = "u_time"
	uniformResolution = "u_resolution"
	uniformMouse      = "u_mouse"
	uniformBrightness = "u_brightness"
)

// VertexSource maps the unit quad to clip space.
const VertexSource = `#version 330 core
layout(location = 0) in vec2 aPos;

void main() {
    gl_Position = vec4(aPos * 2.0 - 1.0, 0.0, 1.0);
}`

// FragmentSource computes the animated gradient. Keep it in step with Shade.
const FragmentSource = `#version 330 core
out vec4 fragColor;

uniform vec2 u_resolution;
uniform float u_time;
uniform vec2 u_mouse;
uniform float u_brightness;

float noise(vec2 p) {
    vec2 i = floor(p);
    vec2 f = fract(p);
    f = f * f * (3.0 - 2.0 * f);
    float a = sin(i.x + i.y * 19.19);
    float b = sin(i.x + 1.0 + i.y * 19.19);
    float c = sin(i.x + (i.y + 1.0) * 19.19);
    float d = sin(i.x + 1.0 + (i.y + 1.0) * 19.19);
    return mix(mix(a, b, f.x), mix(c, d, f.x), f.y);
}

float fbm(vec2 p) {
    float v = 0.0;
    float a = 0.5;
    float f = 1.0;
    for (int i = 0; i < 6; i++) {
        v += a * noise(p * f);
        f *= 2.0;
        a *= 0.5;
    }
    return v;
}

void main() {
    vec2 uv = (gl_FragCoord.xy - 0.5 * u_resolution) / min(u_resolution.x, u_resolution.y);
    vec2 mouse = (u_mouse + 1.0) * 0.5;

    float t = u_time * 0.2;
    vec2 p = uv + vec2(sin(t), cos(t)) * 0.1;

    float pattern1 = fbm(p * 3.0 + t);
    float pattern2 = fbm(p * 5.0 - t);

    vec3 col1 = mix(vec3(0.1, 0.05, 0.2), vec3(0.3, 0.2, 0.5), pattern1);
    vec3 col2 = mix(vec3(0.2, 0.4, 0.6), vec3(0.1, 0.3, 0.4), pattern2);

    vec3 color = mix(col1, col2, 0.5 + 0.5 * sin(u_time * 0.1));

    float mouseDist = length(uv - (mouse - 0.5) * 2.0);
    color += vec3(0.3, 0.4, 0.5) * exp(-mouseDist * 4.0);

    color *= 1.0 - length(uv) * 0.5;

    color = pow(max(color, vec3(0.0)), vec3(0.8));
    color *= u_brightness;

    fragColor = vec4(color, 1.0);
}`
