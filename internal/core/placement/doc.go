// Package placement 实现放置信息存储
//
// 放置信息描述资源在世界中被引用的位置，分为两类：
//
//   - 静态放置：按关卡分组（AddLevel / RemoveLevel），卸载关卡会使其资源进入孤立状态
//   - 动态放置：按所有者分组（Attach / Update / Detach），用于移动或生成的对象
//
// 控制角色修改 Store，每个调度轮次通过 Snapshot 取得不可变快照交给计算角色。
// 快照在放置信息未变化时复用，不会重复构建。
//
// Store 不是并发安全的，由 streaming.Manager 的互斥锁保护。
package placement
