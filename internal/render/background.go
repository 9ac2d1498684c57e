package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const (
	skyboxScale = 1000
	// Width/height range treated as an equirectangular panorama; anything else is stretched
	// across a cube as a cubemap.
	equirectAspectMin = 1.8
	equirectAspectMax = 2.2
)

var spaceColour = rl.NewColor(4, 6, 16, 255)

// background draws the space backdrop: a textured skybox once the image is uploaded, a flat
// dark colour until then or if loading failed.
type background struct {
	tex      *pendingTexture
	loaded   bool
	equirect bool
	mesh     rl.Mesh
	mtl      rl.Material
	camPos   int32
	texLoc   int32
}

func (b *background) ensure(log *zap.Logger) bool {
	if b.loaded {
		return true
	}
	if b.tex == nil || !b.tex.poll(log) {
		return false
	}
	b.mesh = rl.GenMeshCube(1, 1, 1)
	b.mtl = rl.LoadMaterialDefault()
	b.equirect = b.tex.aspect >= equirectAspectMin && b.tex.aspect <= equirectAspectMax
	if b.equirect {
		shader := rl.LoadShaderFromMemory(equirectVS, equirectFS)
		if rl.IsShaderValid(shader) {
			b.mtl.Shader = shader
			b.camPos = rl.GetShaderLocation(shader, "cameraPosition")
			b.texLoc = rl.GetShaderLocation(shader, "skybox")
		} else {
			log.Warn("skybox shader failed to compile, drawing panorama as a plain cube")
			b.equirect = false
		}
	}
	if !b.equirect {
		rl.SetMaterialTexture(&b.mtl, rl.MapAlbedo, b.tex.tex)
	}
	b.loaded = true
	return true
}

// draw renders inside BeginMode3D. The cube follows the camera so it never gets closer.
func (b *background) draw(log *zap.Logger, cam rl.Camera3D) {
	if !b.ensure(log) {
		return
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	pos := cam.Position
	transform := rl.MatrixMultiply(
		rl.MatrixScale(skyboxScale, skyboxScale, skyboxScale),
		rl.MatrixTranslate(pos.X, pos.Y, pos.Z),
	)
	if b.equirect {
		if b.camPos >= 0 {
			p := []float32{pos.X, pos.Y, pos.Z}
			rl.SetShaderValueV(b.mtl.Shader, b.camPos, p, rl.ShaderUniformVec3, 1)
		}
		if b.texLoc >= 0 {
			rl.SetShaderValueTexture(b.mtl.Shader, b.texLoc, b.tex.tex)
		}
	}
	rl.DrawMesh(b.mesh, b.mtl, transform)
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

func (b *background) unload() {
	if b.loaded {
		rl.UnloadMesh(&b.mesh)
	}
	if b.tex != nil {
		b.tex.unload()
	}
}
