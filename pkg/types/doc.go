// Package types 定义 go-lodstream 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他 lodstream 内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
// 基础类型:
//   - geometry.go - Vector, Sphere
//   - ids.go      - ResourceID, OwnerID, LevelID
//   - enums.go    - ResourceClass, TransferStatus, HeuristicKind, Stage
//   - errors.go   - 公共错误定义
//
// 业务类型:
//   - view.go     - ViewInfo（相机/视点采样）
//   - instance.go - StaticInstance, DynamicInstance（放置信息）
//   - stats.go    - Stats（聚合统计）, ResourceReport（单资源诊断）
//
// 事件类型:
//   - events.go   - EvtLevelChangeIssued, EvtLevelChangeCancelled, EvtTransferRejected, EvtPassCompleted
//
// # 细节等级约定
//
// 细节等级（detail level）取值 1..N，数值越大细节越多、字节越多。
// 等级 0 只出现在启发式的中间结果中，最终都会被钳制到 [MinAllowed, MaxAllowed]。
//
// # 设计原则
//
//  1. 不可变性：类型创建后尽量不可修改，使用值类型
//  2. 零依赖：不依赖任何其他 lodstream 内部包（最底层）
//  3. 可序列化：统计与诊断类型带 json 标签，供自省服务直接输出
package types
