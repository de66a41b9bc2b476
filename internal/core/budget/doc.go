// Package budget 实现内存预算分配
//
// 每个完整处理轮次结束时，分配器按优先级降序遍历候选资源，
// 在池内存允许的范围内发起增长，并从低优先级一端收缩以腾出空间。
//
// # 组成
//
//   - Tracker: 进行中传输的字节记账（AvailableNow / AvailableLater / Temp）
//   - Gates: 增长闸门（停止增长、全部暂停、关卡切换后的最小请求限制）
//   - Fudge: 距离修正系数控制器，内存紧张时整体降级
//   - Allocator: 有限池与无限池两种分配模式，以及紧急驱逐
//
// # 有限池算法
//
//	HighPrio 从最高优先级向下，LowPrio 从最低优先级向上：
//	  1. 进行中的收缩若低于 wanted 且可负担，取消它
//	  2. 空闲且 wanted > resident 时预留 AvailableLater；
//	     目标等级的完整字节不超过 AvailableNow 时发起增长
//	  3. AvailableLater < 0 时先从低优先级端收缩多余等级，再收缩到最小等级
//	  4. 收缩请求在循环结束后统一发起
//
// 所有类型只由控制角色使用，不是并发安全的。
package budget
