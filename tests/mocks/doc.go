// Package mocks 提供统一的测试 Mock 实现
//
// 本包提供外部协作方接口的测试双（Test Doubles）。
//
// # 外部资源层 Mock
//
//   - MockResource: 模拟 interfaces.Resource，字节表与常驻等级可直接设置
//   - MockTransferLayer: 模拟 interfaces.TransferLayer，记录发起与取消调用
//   - MockMemoryPool: 模拟 interfaces.MemoryPool
//
// # 组件 Mock
//
//   - MockReporter: 模拟 interfaces.Reporter，记录上报次数
//
// # 设计原则
//
// 1. 函数式注入: 每个 Mock 都支持通过 XxxFunc 字段注入自定义行为
// 2. 调用记录: 关键 Mock 记录调用历史，便于验证测试行为
// 3. 并发安全: 所有 Mock 内部加锁，可在 -race 下使用
//
// # 使用示例
//
//	res := mocks.NewMockResource("tex-1", 1, 10, 20, 40, 80)
//	tl := mocks.NewMockTransferLayer()
//	tl.BeginFunc = func(r interfaces.Resource, target int, _ bool) error {
//	    return errors.New("queue full")
//	}
//
//	// 完成所有进行中的传输
//	tl.FinishAll()
package mocks
