package scene

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/strata-go/engine/camera"
	"github.com/Carmen-Shannon/strata-go/engine/renderer"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/material"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/shader"
	"github.com/Carmen-Shannon/strata-go/engine/tilemap"
)

// Scene manages a stack of tile maps with a Camera and Renderer for rendering.
// Each attached map owns per-layer GPU state (mesh buffers, layer color uniform)
// and an optional Material for its atlas. Layers are drawn back to front in map
// attachment order, then layer order within each map.
// Scenes can be hot-swapped via the Active flag to switch between different views or levels.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// SetRenderer replaces the scene's renderer.
	//
	// Parameters:
	//   - r: the new renderer
	SetRenderer(r renderer.Renderer)

	// Count returns the number of tile maps attached to the scene.
	//
	// Returns:
	//   - int: count of attached maps
	Count() int

	// CountQuads returns the total number of meshed quads across all attached
	// maps and layers, including invisible layers.
	//
	// Returns:
	//   - int: total quad count
	CountQuads() int

	// Add attaches a tile map to the scene and uploads its GPU state. Layer
	// meshes are built in parallel on the scene's mesh worker pool, vertex and
	// index buffers are created per layer, and the flat and textured tile
	// pipelines are registered with the renderer.
	//
	// The plain shader pair renders untextured layers; the textured pair is
	// only required when the map contains textured layers, in which case mat
	// must carry the map's atlas. The material's pipeline key is set to the
	// textured pipeline so callers can look it up later.
	//
	// Panics if the scene has no Renderer or m is nil.
	//
	// Parameters:
	//   - m: the tile map to attach
	//   - mat: the material holding the map's atlas (nil for maps with no textured layers)
	//   - plainVert: the flat tile vertex shader
	//   - plainFrag: the flat tile fragment shader
	//   - texturedVert: the textured tile vertex shader (nil if unused)
	//   - texturedFrag: the textured tile fragment shader (nil if unused)
	//   - pipelineOpts: optional pipeline builder options applied to both pipelines (e.g. blending)
	//
	// Returns:
	//   - error: error if meshing, pipeline assembly, or GPU upload fails
	Add(m tilemap.TileMap, mat material.Material, plainVert, plainFrag, texturedVert, texturedFrag shader.Shader, pipelineOpts ...pipeline.PipelineBuilderOption) error

	// Get retrieves an attached tile map by name.
	// Returns nil if not found.
	//
	// Parameters:
	//   - name: the map's name
	//
	// Returns:
	//   - tilemap.TileMap: the map or nil
	Get(name string) tilemap.TileMap

	// Remove detaches a tile map from the scene by name and releases its
	// per-layer GPU resources.
	//
	// Parameters:
	//   - name: the map's name
	Remove(name string)

	// Clear detaches all maps from the scene and releases their GPU resources.
	Clear()

	// RebuildLayer re-meshes a single layer of an attached map and re-uploads
	// its vertex and index buffers. Call after editing tiles via SetTile.
	//
	// Parameters:
	//   - mapName: the attached map's name
	//   - layerName: the layer to rebuild
	//
	// Returns:
	//   - error: error if the map or layer is unknown or the upload fails
	RebuildLayer(mapName, layerName string) error

	// PrepareFrame advances the camera, writes the tile transform uniform, and
	// uploads the current layer colors. Must be called once per frame before
	// DrawCalls.
	PrepareFrame()

	// DrawCalls issues one draw call per visible, non-empty layer of every
	// attached map, back to front. Must be called within a BeginFrame/EndFrame
	// block on the renderer.
	//
	// Returns:
	//   - error: error if a draw call fails
	DrawCalls() error
}

// layerState holds the GPU-side resources of one meshed layer.
type layerState struct {
	layer      tilemap.Layer
	meshBGP    bind_group_provider.BindGroupProvider
	layerBGP   bind_group_provider.BindGroupProvider
	colorBind  int
	quadCount  int
	indexCount int
}

// mapState holds the render wiring of one attached map: its layer states in
// draw order and the pipeline keys for each vertex variant.
type mapState struct {
	m           tilemap.TileMap
	mat         material.Material
	plainKey    string
	texturedKey string
	layers      []*layerState
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	maps    []*mapState
	mapsByN map[string]*mapState

	cam camera.Camera
	r   renderer.Renderer

	cameraBinding int // binding index of the tile transform uniform in the camera group

	// Pre-allocated slices reused each frame to avoid per-frame allocations.
	writePool          []bind_group_provider.BufferWrite
	drawBindGroupsPool []bind_group_provider.BindGroupProvider

	// meshPool manages a bounded set of reusable goroutines for parallel layer
	// meshing during Add. Workers persist across calls, avoiding per-map
	// goroutine spawn/teardown overhead.
	meshPool    worker.DynamicWorkerPool
	meshWorkers int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene with the given camera, renderer, and a vertex shader
// used to discover the camera's bind group layout. All three are required and NewScene
// panics if any of them is nil. The vertex shader's declarations are scanned for the
// camera provider and its group's layout descriptor is used to initialize the camera's
// BindGroupProvider on the GPU.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - vertexShader: a vertex shader whose bind groups include the tile transform layout (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, vertexShader shader.Shader, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}
	if vertexShader == nil {
		panic("scene: NewScene requires a non-nil vertex shader for camera BGP init")
	}

	s := &scene{
		mu:                 &sync.RWMutex{},
		name:               name,
		active:             false,
		cam:                cam,
		r:                  r,
		mapsByN:            make(map[string]*mapState),
		meshWorkers:        max(runtime.NumCPU()-1, 1),
		drawBindGroupsPool: make([]bind_group_provider.BindGroupProvider, 0, 3),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the mesh pool after options so WithMeshWorkers can override the default.
	// Queue size of 64 accommodates typical layer counts with headroom.
	s.meshPool = worker.NewDynamicWorkerPool(s.meshWorkers, 64, 1*time.Second)

	// Initialize the camera's bind group on the GPU using the layout from the vertex shader.
	cameraGroup, cameraBinding := providerLocation(vertexShader.Declarations(), shader.AnnotationArgCamera)
	s.cameraBinding = cameraBinding
	if bgp := cam.BindGroupProvider(); bgp != nil {
		if err := r.InitBindGroup(bgp, vertexShader.BindGroupLayoutDescriptor(cameraGroup), nil, nil); err != nil {
			panic(fmt.Sprintf("scene: failed to init camera bind group: %v", err))
		}
	}

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.maps)
}

func (s *scene) CountQuads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, ms := range s.maps {
		for _, ls := range ms.layers {
			count += ls.quadCount
		}
	}
	return count
}

func (s *scene) Add(m tilemap.TileMap, mat material.Material, plainVert, plainFrag, texturedVert, texturedFrag shader.Shader, pipelineOpts ...pipeline.PipelineBuilderOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		panic("scene: cannot Add without a Renderer attached")
	}
	if m == nil {
		panic("scene: cannot Add a nil TileMap")
	}
	if _, exists := s.mapsByN[m.Name()]; exists {
		return fmt.Errorf("scene %q: map %q is already attached", s.name, m.Name())
	}

	layers := m.Layers()
	hasTextured := false
	for _, l := range layers {
		if l.Textured() {
			hasTextured = true
			break
		}
	}
	if hasTextured {
		if mat == nil {
			return fmt.Errorf("scene %q: map %q has textured layers but no material", s.name, m.Name())
		}
		if texturedVert == nil || texturedFrag == nil {
			return fmt.Errorf("scene %q: map %q has textured layers but no textured shader pair", s.name, m.Name())
		}
	}

	ms := &mapState{m: m, mat: mat}

	// Register pipelines. The plain pipeline draws position-only quads; the
	// textured pipeline carries the texture cell attribute and must reject a
	// mismatched vertex stride at assembly time rather than on the GPU.
	renderOpts := append([]pipeline.PipelineBuilderOption{
		pipeline.WithVertexShader(plainVert),
		pipeline.WithFragmentShader(plainFrag),
	}, pipelineOpts...)
	plainPipe := pipeline.NewPipeline(m.Name()+"/"+plainVert.Key(), renderOpts...)
	if err := plainPipe.ValidateVertexStride(tilemap.GPUTileVertexStride); err != nil {
		return fmt.Errorf("scene %q: %w", s.name, err)
	}
	if err := s.r.RegisterPipelines(plainPipe); err != nil {
		return fmt.Errorf("scene %q: failed to register flat tile pipeline for map %q: %w", s.name, m.Name(), err)
	}
	ms.plainKey = plainPipe.PipelineKey()

	if hasTextured {
		texOpts := append([]pipeline.PipelineBuilderOption{
			pipeline.WithVertexShader(texturedVert),
			pipeline.WithFragmentShader(texturedFrag),
		}, pipelineOpts...)
		texPipe := pipeline.NewPipeline(m.Name()+"/"+texturedVert.Key(), texOpts...)
		if err := texPipe.ValidateVertexStride(tilemap.GPUTexturedTileVertexStride); err != nil {
			return fmt.Errorf("scene %q: %w", s.name, err)
		}
		if err := s.r.RegisterPipelines(texPipe); err != nil {
			return fmt.Errorf("scene %q: failed to register textured tile pipeline for map %q: %w", s.name, m.Name(), err)
		}
		ms.texturedKey = texPipe.PipelineKey()
		mat.SetPipelineKey(ms.texturedKey)
	}

	// Upload the atlas once per map: decode, slice into array layers, create
	// the texture array and sampler, then build the material bind group from
	// the textured fragment shader's material group layout.
	if hasTextured {
		if err := s.initMaterial(ms, texturedFrag); err != nil {
			return err
		}
	}

	// Mesh all layers in parallel on the mesh pool. Each task produces the
	// serialized vertex/index bytes for one layer; GPU upload stays serial.
	type meshResult struct {
		vertexData []byte
		indexData  []byte
		indexCount int
		quadCount  int
		err        error
	}
	results := make([]meshResult, len(layers))
	var wg sync.WaitGroup
	for i, l := range layers {
		wg.Add(1)
		idx, lCap := i, l
		s.meshPool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				if lCap.Textured() {
					mesh, err := tilemap.BuildLayerMesh(lCap)
					if err != nil {
						results[idx].err = err
						return nil, err
					}
					results[idx] = meshResult{
						vertexData: mesh.VertexBytes(),
						indexData:  mesh.IndexBytes(),
						indexCount: len(mesh.Indices),
						quadCount:  mesh.QuadCount,
					}
					return nil, nil
				}
				mesh := tilemap.BuildFlatLayerMesh(lCap)
				results[idx] = meshResult{
					vertexData: mesh.VertexBytes(),
					indexData:  mesh.IndexBytes(),
					indexCount: len(mesh.Indices),
					quadCount:  mesh.QuadCount,
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	// Serial GPU upload per layer: mesh buffers plus the layer color uniform.
	for i, l := range layers {
		res := results[i]
		if res.err != nil {
			return fmt.Errorf("scene %q: failed to mesh layer %q of map %q: %w", s.name, l.Name(), m.Name(), res.err)
		}

		ls := &layerState{
			layer:      l,
			quadCount:  res.quadCount,
			indexCount: res.indexCount,
		}

		if res.quadCount > 0 {
			meshBGP := bind_group_provider.NewBindGroupProvider(m.Name() + "_" + l.Name() + "_mesh")
			if err := s.r.InitMeshBuffers(meshBGP, res.vertexData, res.indexData, res.indexCount); err != nil {
				return fmt.Errorf("scene %q: failed to init mesh buffers for layer %q of map %q: %w", s.name, l.Name(), m.Name(), err)
			}
			ls.meshBGP = meshBGP
		}

		// The layer color group comes from whichever fragment shader draws
		// this layer; both variants declare the same layer provider.
		fragShader := plainFrag
		if l.Textured() {
			fragShader = texturedFrag
		}
		layerGroup, colorBinding := providerLocation(fragShader.Declarations(), shader.AnnotationArgLayer)
		layerBGP := bind_group_provider.NewBindGroupProvider(m.Name() + "_" + l.Name() + "_layer")
		if err := s.r.InitBindGroup(layerBGP, fragShader.BindGroupLayoutDescriptor(layerGroup), nil, nil); err != nil {
			return fmt.Errorf("scene %q: failed to init layer bind group for layer %q of map %q: %w", s.name, l.Name(), m.Name(), err)
		}
		ls.layerBGP = layerBGP
		ls.colorBind = colorBinding

		ms.layers = append(ms.layers, ls)
	}

	s.maps = append(s.maps, ms)
	s.mapsByN[m.Name()] = ms

	return nil
}

func (s *scene) Get(name string) tilemap.TileMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ms, ok := s.mapsByN[name]; ok {
		return ms.m
	}
	return nil
}

func (s *scene) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms, exists := s.mapsByN[name]
	if !exists {
		return
	}
	delete(s.mapsByN, name)
	for i, existing := range s.maps {
		if existing == ms {
			s.maps = append(s.maps[:i], s.maps[i+1:]...)
			break
		}
	}
	releaseMapState(ms)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ms := range s.maps {
		releaseMapState(ms)
	}
	s.maps = nil
	s.mapsByN = make(map[string]*mapState)
}

func (s *scene) RebuildLayer(mapName, layerName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms, exists := s.mapsByN[mapName]
	if !exists {
		return fmt.Errorf("scene %q: no map named %q", s.name, mapName)
	}
	var ls *layerState
	for _, candidate := range ms.layers {
		if candidate.layer.Name() == layerName {
			ls = candidate
			break
		}
	}
	if ls == nil {
		return fmt.Errorf("scene %q: map %q has no layer named %q", s.name, mapName, layerName)
	}

	var vertexData, indexData []byte
	var indexCount, quadCount int
	if ls.layer.Textured() {
		mesh, err := tilemap.BuildLayerMesh(ls.layer)
		if err != nil {
			return fmt.Errorf("scene %q: failed to mesh layer %q of map %q: %w", s.name, layerName, mapName, err)
		}
		vertexData, indexData = mesh.VertexBytes(), mesh.IndexBytes()
		indexCount, quadCount = len(mesh.Indices), mesh.QuadCount
	} else {
		mesh := tilemap.BuildFlatLayerMesh(ls.layer)
		vertexData, indexData = mesh.VertexBytes(), mesh.IndexBytes()
		indexCount, quadCount = len(mesh.Indices), mesh.QuadCount
	}

	// Quad counts change when tiles are added or cleared, so the buffers are
	// recreated rather than written in place.
	if ls.meshBGP != nil {
		ls.meshBGP.Release()
		ls.meshBGP = nil
	}
	if quadCount > 0 {
		meshBGP := bind_group_provider.NewBindGroupProvider(mapName + "_" + layerName + "_mesh")
		if err := s.r.InitMeshBuffers(meshBGP, vertexData, indexData, indexCount); err != nil {
			return fmt.Errorf("scene %q: failed to re-init mesh buffers for layer %q of map %q: %w", s.name, layerName, mapName, err)
		}
		ls.meshBGP = meshBGP
	}
	ls.indexCount = indexCount
	ls.quadCount = quadCount

	return nil
}

func (s *scene) PrepareFrame() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.r == nil {
		return
	}

	writes := s.writePool[:0]

	// Update the camera and write the tile transform uniform once per frame.
	// The transform is constant for every draw issued this frame; the write
	// lands before any vertex of those draws runs.
	if s.cam != nil {
		s.cam.Update()
		if camBGP := s.cam.BindGroupProvider(); camBGP != nil {
			transform := camera.GPUTileTransform{M: s.cam.Transform()}
			writes = append(writes, bind_group_provider.BufferWrite{
				Provider: camBGP,
				Binding:  s.cameraBinding,
				Offset:   0,
				Data:     transform.Marshal(),
			})
		}
	}

	// Write every layer's modulation color. Colors are tiny uniforms, so
	// rewriting them unconditionally is cheaper than tracking dirtiness.
	for _, ms := range s.maps {
		for _, ls := range ms.layers {
			if ls.layerBGP == nil {
				continue
			}
			color := material.GPULayerColor{Color: ls.layer.Color()}
			writes = append(writes, bind_group_provider.BufferWrite{
				Provider: ls.layerBGP,
				Binding:  ls.colorBind,
				Offset:   0,
				Data:     color.Marshal(),
			})
		}
	}
	s.writePool = writes

	if len(writes) > 0 {
		s.r.WriteBuffers(writes)
	}
}

func (s *scene) DrawCalls() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.r == nil {
		return fmt.Errorf("scene %q has no renderer attached", s.name)
	}

	for _, ms := range s.maps {
		for _, ls := range ms.layers {
			if ls.quadCount == 0 || ls.meshBGP == nil || !ls.layer.Visible() {
				continue
			}

			pipelineKey := ms.plainKey
			if ls.layer.Textured() {
				pipelineKey = ms.texturedKey
			}
			if pipelineKey == "" {
				continue
			}

			rp := s.r.Pipeline(pipelineKey)
			if rp == nil {
				continue
			}

			// Collect declarations from both stages and resolve each group
			// index to its provider. Groups are iterated in index order so
			// bindGroups[i] maps to @group(i).
			var allDecls []shader.Annotation
			if vs := rp.Shader(shader.ShaderTypeVertex); vs != nil {
				allDecls = append(allDecls, vs.Declarations()...)
			}
			if fs := rp.Shader(shader.ShaderTypeFragment); fs != nil {
				allDecls = append(allDecls, fs.Declarations()...)
			}

			maxGroup := -1
			groupProviders := make(map[int]bind_group_provider.BindGroupProvider)
			for _, decl := range allDecls {
				if decl.Type != shader.AnnotationTypeProvider || decl.Group == nil {
					continue
				}
				g := *decl.Group
				if g > maxGroup {
					maxGroup = g
				}
				if _, exists := groupProviders[g]; exists {
					continue
				}

				var provider bind_group_provider.BindGroupProvider
				switch decl.Args[0] {
				case shader.AnnotationArgCamera:
					if s.cam != nil {
						provider = s.cam.BindGroupProvider()
					}
				case shader.AnnotationArgMaterial:
					if ms.mat != nil {
						provider = ms.mat.BindGroupProvider()
					}
				case shader.AnnotationArgLayer:
					provider = ls.layerBGP
				}

				if provider != nil {
					groupProviders[g] = provider
				}
			}

			bindGroups := s.drawBindGroupsPool[:0]
			skipLayer := false
			for g := 0; g <= maxGroup; g++ {
				provider, ok := groupProviders[g]
				if !ok || provider == nil {
					skipLayer = true
					break
				}
				bindGroups = append(bindGroups, provider)
			}
			if skipLayer {
				continue
			}

			if err := s.r.DrawCall(pipelineKey, ls.meshBGP, bindGroups); err != nil {
				return fmt.Errorf("draw call failed for layer %q in scene %q: %w", ls.layer.Name(), s.name, err)
			}
		}
	}

	return nil
}

// initMaterial stages the map's atlas, uploads the texture array and sampler,
// and builds the material bind group from the textured fragment shader's
// material group layout. Caller must hold s.mu write lock.
//
// Parameters:
//   - ms: the map state whose material to initialize
//   - texturedFrag: the textured fragment shader declaring the material group
//
// Returns:
//   - error: error if staging or GPU resource creation fails
func (s *scene) initMaterial(ms *mapState, texturedFrag shader.Shader) error {
	mat := ms.mat

	staging, err := mat.Stage()
	if err != nil {
		return fmt.Errorf("scene %q: failed to stage material %q for map %q: %w", s.name, mat.Name(), ms.m.Name(), err)
	}

	bgp := mat.BindGroupProvider()
	if bgp == nil {
		bgp = bind_group_provider.NewBindGroupProvider(ms.m.Name() + "_" + mat.Name())
		mat.SetBindGroupProvider(bgp)
	}

	// Already initialized; materials can be shared across maps.
	if bgp.BindGroup() != nil {
		return nil
	}

	// Resolve the texture and sampler bindings from the material provider
	// declarations, then create the GPU resources the bind group references.
	materialGroup := -1
	for _, decl := range texturedFrag.Declarations() {
		if decl.Type != shader.AnnotationTypeProvider || decl.Args[0] != shader.AnnotationArgMaterial {
			continue
		}
		if decl.Group != nil {
			materialGroup = *decl.Group
		}
		if decl.Binding == nil || len(decl.Args) < 2 {
			continue
		}
		switch decl.Args[1] {
		case shader.AnnotationArgAtlasTexture:
			if err := s.r.InitTextureView(bgp, *decl.Binding, *staging); err != nil {
				return fmt.Errorf("scene %q: failed to init atlas texture for material %q: %w", s.name, mat.Name(), err)
			}
		case shader.AnnotationArgAtlasSampler:
			if err := s.r.InitSampler(bgp, *decl.Binding, *mat.SamplerData()); err != nil {
				return fmt.Errorf("scene %q: failed to init atlas sampler for material %q: %w", s.name, mat.Name(), err)
			}
		}
	}
	if materialGroup < 0 {
		return fmt.Errorf("scene %q: textured fragment shader %q declares no material provider", s.name, texturedFrag.Key())
	}

	if err := s.r.InitBindGroup(bgp, texturedFrag.BindGroupLayoutDescriptor(materialGroup), nil, nil); err != nil {
		return fmt.Errorf("scene %q: failed to init material bind group for %q: %w", s.name, mat.Name(), err)
	}

	return nil
}

// providerLocation finds the group and binding of the first provider
// declaration matching the given identity. Returns (0, 0) when absent so
// callers fall back to the conventional group 0 binding 0.
//
// Parameters:
//   - decls: the shader's parsed declarations
//   - identity: the provider identity to locate
//
// Returns:
//   - group, binding: the declared location, or (0, 0) if not declared
func providerLocation(decls []shader.Annotation, identity shader.AnnotationArg) (int, int) {
	for _, decl := range decls {
		if decl.Type != shader.AnnotationTypeProvider || decl.Args[0] != identity {
			continue
		}
		group, binding := 0, 0
		if decl.Group != nil {
			group = *decl.Group
		}
		if decl.Binding != nil {
			binding = *decl.Binding
		}
		return group, binding
	}
	return 0, 0
}

// releaseMapState releases the GPU resources held by a detached map's layers.
// The material's bind group provider is left alone since materials can be
// shared across maps.
func releaseMapState(ms *mapState) {
	for _, ls := range ms.layers {
		if ls.meshBGP != nil {
			ls.meshBGP.Release()
		}
		if ls.layerBGP != nil {
			ls.layerBGP.Release()
		}
	}
	ms.layers = nil
}
