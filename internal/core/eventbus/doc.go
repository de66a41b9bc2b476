// Package eventbus 实现进程内事件总线
//
// 发布流式诊断事件（等级变更发起/取消/完成、传输被拒绝、轮次完成、增长暂停）。
//
//   - 按事件类型字符串订阅，不传类型表示订阅全部
//   - 发布永不阻塞：订阅者缓冲区满时丢弃，并按订阅记录丢弃数
//   - 并发安全
//
// # 快速开始
//
//	bus := eventbus.NewBus()
//
//	sub, _ := bus.Subscribe([]string{types.EventLevelChangeIssued}, interfaces.BufSize(64))
//	defer sub.Close()
//
//	go func() {
//	    for evt := range sub.Out() {
//	        e := evt.(*types.EvtLevelChangeIssued)
//	        // 处理事件
//	    }
//	}()
//
//	bus.Publish(&types.EvtLevelChangeIssued{...})
//
// # 并发安全
//
//   - 订阅/取消订阅：RWMutex 保护
//   - 发射：节点锁内非阻塞发送
//   - 通道关闭：closeOnce 防止重复
package eventbus
