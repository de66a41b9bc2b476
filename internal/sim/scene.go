package sim

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/dep2p/go-lodstream/pkg/types"
)

// SceneConfig 场景生成参数
type SceneConfig struct {
	// Resources 资源数量
	Resources int

	// LevelCount 每个资源的等级数
	LevelCount int

	// BaseSize 等级 1 的字节数，每升一级乘 4
	BaseSize int64

	// Extent 放置范围（立方体半边长）
	Extent float64

	// InstancesPerResource 每个资源的静态放置数
	InstancesPerResource int

	// Levels 静态放置分成的关卡数
	Levels int

	// CharacterShare 角色类资源占比
	CharacterShare float64

	// Seed 随机种子
	Seed int64
}

// DefaultSceneConfig 返回默认场景参数
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Resources:            256,
		LevelCount:           8,
		BaseSize:             1 << 10,
		Extent:               2000,
		InstancesPerResource: 3,
		Levels:               2,
		CharacterShare:       0.1,
		Seed:                 1,
	}
}

// Scene 生成的场景
type Scene struct {
	Resources []*Resource
	Levels    map[types.LevelID][]types.StaticInstance
}

// Generate 生成场景
//
// 相同参数与种子生成相同的场景。所有资源初始常驻等级为 1。
func Generate(cfg SceneConfig) *Scene {
	if cfg.LevelCount < 1 {
		cfg.LevelCount = 1
	}
	if cfg.Levels < 1 {
		cfg.Levels = 1
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	sizes := make([]int64, cfg.LevelCount)
	size := cfg.BaseSize
	for i := range sizes {
		sizes[i] = size
		size *= 4
	}

	scene := &Scene{
		Resources: make([]*Resource, 0, cfg.Resources),
		Levels:    make(map[types.LevelID][]types.StaticInstance, cfg.Levels),
	}
	for i := 0; i < cfg.Resources; i++ {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			id = uuid.New()
		}
		class := types.ClassWorld
		if rng.Float64() < cfg.CharacterShare {
			class = types.ClassCharacter
		}
		res := NewResource(types.ResourceID(id.String()), class, 1, sizes...)
		scene.Resources = append(scene.Resources, res)

		for k := 0; k < cfg.InstancesPerResource; k++ {
			level := types.LevelID(fmt.Sprintf("level-%d", rng.Intn(cfg.Levels)))
			scene.Levels[level] = append(scene.Levels[level], types.StaticInstance{
				Resource: res.ID(),
				Bounds: types.Sphere{
					Center: types.Vector{
						X: (rng.Float64()*2 - 1) * cfg.Extent,
						Y: (rng.Float64()*2 - 1) * cfg.Extent,
						Z: (rng.Float64()*2 - 1) * cfg.Extent * 0.1,
					},
					Radius: 1 + rng.Float64()*20,
				},
				TexelFactor: 50 + rng.Float64()*200,
			})
		}
	}
	return scene
}

// Bytes 返回场景在指定等级全部常驻时的字节数
func (s *Scene) Bytes(level int) int64 {
	var total int64
	for _, r := range s.Resources {
		total += r.ByteSize(level)
	}
	return total
}
