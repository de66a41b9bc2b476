// Package sim 提供内存池与传输层的进程内模拟
//
// 模拟层用于命令行演示与集成测试：
//   - Pool：固定容量的内存池，分配失败时拒绝
//   - Transfer：发起时按目标等级分配完整字节，完成时释放原常驻字节
//   - Scene：随机生成资源与静态放置
//
// 传输不会自动推进，由调用方通过 Step / CompleteAll 控制。
package sim
