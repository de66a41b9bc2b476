// Package heuristic 实现等级需求评估
//
// 对单个资源，按以下启发式估计期望常驻等级（wantedLevel）：
//
//	主启发式（取最大值）:
//	  Forced   - 强制常驻，直接取最高允许等级
//	  Dynamic  - 动态放置，按视点到包围球的距离换算屏幕纹素
//	  Static   - 静态放置，算法同 Dynamic，距离乘以回退系数
//
//	回退链（主启发式均不适用时按顺序取首个适用者）:
//	  Orphaned - 刚失去全部静态放置，逐级衰减
//	  LastUsed - 按最后绘制时间
//
// 结果钳制到 [MinAllowed, MaxAllowed]，并记录决定性的启发式用于诊断。
//
// Engine 只读取 Input 与 Env，可在多个 goroutine 中并发调用。
package heuristic
