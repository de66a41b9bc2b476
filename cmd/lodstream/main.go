// Package main 提供 lodstream 模拟命令行入口
//
// 生成一个模拟场景，让视点沿 X 轴穿过场景，逐帧驱动引擎并打印统计。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/dep2p/go-lodstream"
	"github.com/dep2p/go-lodstream/internal/sim"
	"github.com/dep2p/go-lodstream/pkg/interfaces"
	"github.com/dep2p/go-lodstream/pkg/lib/log"
	"github.com/dep2p/go-lodstream/pkg/types"
)

var logger = log.Logger("lodstream/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
var (
	// ─────────────────────────────────────────────────────────────────────
	// 配置
	// ─────────────────────────────────────────────────────────────────────
	configFile = flag.String("config", "", "配置文件路径（.json/.yaml）")
	preset     = flag.String("preset", lodstream.PresetDefault, "预设配置 (low-memory/default/high-memory)")
	useEnv     = flag.Bool("env", true, "应用 LODSTREAM_* 环境变量")

	// ─────────────────────────────────────────────────────────────────────
	// 模拟参数
	// ─────────────────────────────────────────────────────────────────────
	frames     = flag.Int("frames", 600, "模拟帧数")
	frameTime  = flag.Duration("frame-time", 16*time.Millisecond, "每帧时长")
	resources  = flag.Int("resources", 256, "资源数量")
	seed       = flag.Int64("seed", 1, "场景随机种子")
	capacity   = flag.Int64("capacity", 0, "池容量（字节，0 = 物理内存的 1/8）")
	unlimited  = flag.Bool("unlimited", false, "以无限池模式运行")
	completion = flag.Int("complete-per-frame", 8, "每帧完成的传输数")
	speed      = flag.Float64("speed", 10, "视点每帧移动距离")
	every      = flag.Int("report-every", 60, "每隔多少帧打印统计")

	// ─────────────────────────────────────────────────────────────────────
	// 诊断
	// ─────────────────────────────────────────────────────────────────────
	introspectAddr = flag.String("introspect", "", "自省服务地址（为空则不启用）")
	hold           = flag.Bool("hold", false, "模拟结束后保持运行直到收到退出信号")

	// ─────────────────────────────────────────────────────────────────────
	// 信息显示
	// ─────────────────────────────────────────────────────────────────────
	showVersion = flag.Bool("version", false, "显示版本信息")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		fmt.Println(lodstream.VersionInfo())
		return nil
	}

	log.ConfigureFromEnv()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// ─────────────────────────────────────────────────────────────────────
	// 场景与外部协作者
	// ─────────────────────────────────────────────────────────────────────
	sceneCfg := sim.DefaultSceneConfig()
	sceneCfg.Resources = *resources
	sceneCfg.Seed = *seed
	scene := sim.Generate(sceneCfg)

	poolSize := *capacity
	if poolSize <= 0 {
		poolSize = sim.DefaultCapacity()
	}
	pool := sim.NewPool(poolSize)
	transfer := sim.NewTransfer(pool)

	opts, err := buildOptions(transfer, pool)
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	fmt.Printf("📦 %s\n", lodstream.VersionInfo())
	engine, err := lodstream.Start(ctx, opts...)
	if err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	defer func() { _ = engine.Close() }()

	if err := loadScene(engine, transfer, scene); err != nil {
		return err
	}
	printSceneInfo(scene, pool, engine)

	// ─────────────────────────────────────────────────────────────────────
	// 帧循环
	// ─────────────────────────────────────────────────────────────────────
	origin := types.Vector{X: -sceneCfg.Extent}
	dt := frameTime.Seconds()
	ticker := time.NewTicker(*frameTime)
	defer ticker.Stop()

	for frame := 1; frame <= *frames; frame++ {
		select {
		case <-ctx.Done():
			fmt.Println("\n收到退出信号")
			return nil
		case <-ticker.C:
		}

		engine.SubmitView(origin, 1920, 1920, 1, false, 0)
		if err := engine.Tick(ctx, dt, false); err != nil {
			return fmt.Errorf("第 %d 帧处理失败: %w", frame, err)
		}
		transfer.Step(*completion)
		origin.X += *speed

		if *every > 0 && frame%*every == 0 {
			printStats(frame, engine.Stats(), pool)
		}
	}

	// 落定剩余传输
	transfer.CompleteAll()
	left := engine.BlockUntilSettled(ctx, time.Second)
	printSummary(engine, transfer, pool, left)

	if *hold && engine.IntrospectAddr() != "" {
		fmt.Printf("自省服务运行于 http://%s/debug/introspect，按 Ctrl+C 退出\n", engine.IntrospectAddr())
		<-ctx.Done()
	}
	return nil
}

// buildOptions 根据命令行参数构建引擎选项
func buildOptions(transfer interfaces.TransferLayer, pool interfaces.MemoryPool) ([]lodstream.Option, error) {
	if !lodstream.IsValidPreset(*preset) {
		return nil, fmt.Errorf("未知预设: %s", *preset)
	}

	opts := []lodstream.Option{
		lodstream.WithPreset(*preset),
		lodstream.WithTransferLayer(transfer),
	}
	if !*unlimited {
		opts = append(opts, lodstream.WithMemoryPool(pool))
	}
	if *configFile != "" {
		opts = append(opts, lodstream.WithConfigFile(*configFile))
	}
	if *useEnv {
		opts = append(opts, lodstream.WithEnv())
	}
	if *introspectAddr != "" {
		opts = append(opts, lodstream.WithIntrospect(true, *introspectAddr))
	}
	return opts, nil
}

// loadScene 注册场景资源与关卡放置
func loadScene(engine *lodstream.Engine, transfer *sim.Transfer, scene *sim.Scene) error {
	for _, res := range scene.Resources {
		if !transfer.RegisterResident(res) {
			return fmt.Errorf("池容量不足以容纳资源 %s 的常驻等级", res.ID())
		}
		if err := engine.RegisterResource(res); err != nil {
			return fmt.Errorf("注册资源 %s: %w", res.ID(), err)
		}
	}

	levels := make([]types.LevelID, 0, len(scene.Levels))
	for id := range scene.Levels {
		levels = append(levels, id)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })
	for _, id := range levels {
		if err := engine.AddLevel(id, scene.Levels[id]); err != nil {
			return fmt.Errorf("添加关卡 %s: %w", id, err)
		}
	}
	logger.Info("场景已加载", "resources", len(scene.Resources), "levels", len(levels))
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 输出
// ═══════════════════════════════════════════════════════════════════════════

func printSceneInfo(scene *sim.Scene, pool *sim.Pool, engine *lodstream.Engine) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════")
	fmt.Printf("  资源数:        %d\n", len(scene.Resources))
	fmt.Printf("  关卡数:        %d\n", len(scene.Levels))
	fmt.Printf("  全部最高等级:  %s\n", formatBytes(scene.Bytes(sim.DefaultSceneConfig().LevelCount-1)))
	fmt.Printf("  池容量:        %s\n", formatBytes(pool.Capacity()))
	fmt.Printf("  已用:          %s\n", formatBytes(pool.Allocated()))
	if addr := engine.IntrospectAddr(); addr != "" {
		fmt.Printf("  自省服务:      http://%s/debug/introspect\n", addr)
	}
	fmt.Println("═══════════════════════════════════════════════════════")
	fmt.Println()
}

func printStats(frame int, s types.Stats, pool *sim.Pool) {
	fmt.Printf("[帧 %5d] 轮次=%d 候选=%d 进行中=%d 常驻=%s 想要=%s 已用=%s 修正=%.2f 发起=%d 拒绝=%d 暂停=%v\n",
		frame, s.Pass, s.Candidates, s.InFlight,
		formatBytes(s.ResidentBytes), formatBytes(s.WantedBytes), formatBytes(pool.Allocated()),
		s.FudgeFactor, s.Issued, s.Rejected, s.Suspended)
}

func printSummary(engine *lodstream.Engine, transfer *sim.Transfer, pool *sim.Pool, left int) {
	s := engine.Stats()
	c := transfer.Counts()
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════")
	fmt.Printf("  轮次:          %d\n", s.Pass)
	fmt.Printf("  完成传输:      %d\n", c.Completed)
	fmt.Printf("  取消传输:      %d\n", c.Cancelled)
	fmt.Printf("  未落定:        %d\n", left)
	fmt.Printf("  峰值占用:      %s / %s\n", formatBytes(pool.Peak()), formatBytes(pool.Capacity()))
	fmt.Printf("  传输速率:      %.1f/s\n", engine.TransferRate())

	if len(s.HeuristicBytes) > 0 {
		kinds := make([]string, 0, len(s.HeuristicBytes))
		for k := range s.HeuristicBytes {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		fmt.Println("  按启发式归因:")
		for _, k := range kinds {
			fmt.Printf("    %-10s %s\n", k, formatBytes(s.HeuristicBytes[k]))
		}
	}
	fmt.Println("═══════════════════════════════════════════════════════")
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
