// Package registry 实现被跟踪资源表
//
// Registry 持有所有可流式资源的规范表及其决策相关的缓存状态
// （常驻/请求/期望/最小/最大等级、每级字节表、标志位）。
//
// # 索引稳定性
//
// 注册进入待插入队列，注销只做标记；两者都在 SyncPendingChanges 中生效，
// 这是唯一会改变索引的地方。删除时把最后一个存活条目换入空位并更新其索引，
// 因此扫描过程中不会有条目被移动或重复处理。
//
// # 并发
//
// Registry 不是并发安全的，由 streaming.Manager 的互斥锁保护。
// 后台优先级计算只读取快照，从不访问 Registry。
package registry
