package render

import rl "github.com/gen2brain/raylib-go/raylib"

// Directional light + ambient + Blinn-Phong specular. Attribute names match raylib meshes.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform sampler2D texture0;
uniform float useTexture;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  if (useTexture > 0.5) {
    tint = texture(texture0, fragTexCoord) * colDiffuse;
  }
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
	// Samples a 2:1 panorama by view direction.
	equirectVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragWorldPos;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragWorldPos = worldPos.xyz;
  gl_Position = matProjection * matView * worldPos;
}
`
	equirectFS = `#version 330
in vec3 fragWorldPos;
out vec4 finalColor;
uniform sampler2D skybox;
uniform vec3 cameraPosition;
void main() {
  vec3 dir = normalize(fragWorldPos - cameraPosition);
  float lon = atan(dir.z, dir.x);
  float lat = asin(clamp(dir.y, -1.0, 1.0));
  float u = lon / 6.28318530718 + 0.5;
  float v = 0.5 - lat / 3.14159265359;
  finalColor = texture(skybox, vec2(u, v));
}
`
)

var (
	ambientLight     = [4]float32{0.35, 0.35, 0.4, 1.0}
	lightColor       = [3]float32{1.0, 0.98, 0.95}
	lightIntensity   = float32(0.8)
	specularPower    = float32(48.0)
	specularStrength = float32(0.35)
)

// litShader caches the uniform locations of the lit program.
type litShader struct {
	shader  rl.Shader
	viewPos int32
	light   int32
	useTex  int32
}

func loadLitShader() (litShader, bool) {
	sh := rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(sh) {
		return litShader{}, false
	}
	s := litShader{
		shader:  sh,
		viewPos: rl.GetShaderLocation(sh, "viewPos"),
		light:   rl.GetShaderLocation(sh, "lightDir"),
		useTex:  rl.GetShaderLocation(sh, "useTexture"),
	}
	// Constant for the life of the program.
	amb := ambientLight
	col := lightColor
	if loc := rl.GetShaderLocation(sh, "ambient"); loc >= 0 {
		rl.SetShaderValueV(sh, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(sh, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(sh, loc, col[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(sh, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(sh, loc, []float32{lightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(sh, "specularPower"); loc >= 0 {
		rl.SetShaderValue(sh, loc, []float32{specularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(sh, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(sh, loc, []float32{specularStrength}, rl.ShaderUniformFloat)
	}
	return s, true
}

// setView updates the per-frame uniforms. Arrays are local so cgo never sees Go pointers
// that outlive the call.
func (s litShader) setView(viewPos, lightDir [3]float32, textured bool) {
	if s.viewPos >= 0 {
		rl.SetShaderValueV(s.shader, s.viewPos, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if s.light >= 0 {
		rl.SetShaderValueV(s.shader, s.light, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if s.useTex >= 0 {
		v := float32(0)
		if textured {
			v = 1
		}
		rl.SetShaderValue(s.shader, s.useTex, []float32{v}, rl.ShaderUniformFloat)
	}
}
