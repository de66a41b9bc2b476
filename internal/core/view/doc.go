// Package view 实现视点聚合
//
// 宿主每帧提交一个或多个视点（相机位置、屏幕尺寸、放大系数、持续时间），
// Aggregator 合并近似重复的提交，维护持续视点的剩余时间，
// 并在每个调度轮次开始时解析出本轮权威视点列表。
//
// # 视点类型
//
//   - pending：duration <= 0，仅本轮有效，Resolve 后清空
//   - lasting：duration > 0，每轮按 deltaTime 递减，<= 0 时丢弃
//   - slave：从属位置，解析时复用首个视点的屏幕参数
//
// # 独占视点
//
// 只要存在任一 override 视点，本轮只保留 override 视点。
//
// # 并发
//
// Aggregator 不是并发安全的，由 streaming.Manager 的互斥锁保护。
package view
