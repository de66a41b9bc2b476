// Package interfaces 定义 go-lodstream 的公共接口
//
// 接口按协作方组织（一个接口文件 = 一组契约）：
//
// # 外部协作方
//
// 由宿主的资源/平台层实现，核心只通过这些窄接口访问：
//   - resource.go       - Resource 可流式资源、TransferLayer 异步传输、MemoryPool 池内存查询
//
// # 核心组件
//
//   - streaming.go      - StreamingManager 宿主 API（上下文对象）
//   - eventbus.go       - 诊断事件总线
//   - metrics.go        - 轮次统计上报
//
// # 依赖方向
//
//	宿主 → StreamingManager → (Resource, TransferLayer, MemoryPool)
//
// 核心从不直接接触传输内存。
package interfaces
