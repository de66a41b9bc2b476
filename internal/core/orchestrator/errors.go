package orchestrator

import "errors"

var (
	// ErrNilTransferLayer 未提供传输层
	ErrNilTransferLayer = errors.New("orchestrator: nil transfer layer")

	// ErrNilTracker 未提供记账器
	ErrNilTracker = errors.New("orchestrator: nil tracker")
)
