package budget

import (
	"sort"
	"time"

	"github.com/dep2p/go-lodstream/internal/core/registry"
	"github.com/dep2p/go-lodstream/pkg/types"
)

// EvictRequest 紧急驱逐的输入
type EvictRequest struct {
	// Entries 所有存活条目
	Entries []*registry.Entry

	// Required 需要释放的字节（不足 MinEvict 时按 MinEvict）
	Required int64

	Now time.Time

	// Spare 第一轮跳过的类别（优先类别）
	Spare func(types.ResourceClass) bool
}

// Evict 逐级收缩空闲资源直到释放足够字节
//
// 先跳过 Spare 类别，每轮每个资源最多降一级；仍不足时连同 Spare 类别一起收缩。
// 返回计划释放的字节与是否满足要求。
func (a *Allocator) Evict(req EvictRequest, issuer Issuer) (int64, bool) {
	required := req.Required
	if required < a.cfg.MinEvict {
		required = a.cfg.MinEvict
	}

	type candidate struct {
		e      *registry.Entry
		target int
		spare  bool
	}
	var cands []*candidate
	for _, e := range req.Entries {
		if e.Removed() || !e.Ready || e.InFlight || e.Forced(req.Now) || e.Resident <= e.MinAllowed {
			continue
		}
		spare := req.Spare != nil && req.Spare(e.Class)
		cands = append(cands, &candidate{e: e, target: e.Resident, spare: spare})
	}
	// 大资源优先
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].e.Size(cands[i].e.Resident) > cands[j].e.Size(cands[j].e.Resident)
	})

	var saved int64
	keep := true
	includeSpare := false
	for saved < required && keep {
		keep = !includeSpare
		for _, c := range cands {
			if saved >= required {
				break
			}
			if c.spare && !includeSpare {
				continue
			}
			next := c.target - 1
			if next < c.e.MinAllowed {
				continue
			}
			saved += c.e.Size(c.target) - c.e.Size(next)
			c.target = next
			keep = true
		}
		includeSpare = true
	}

	var freed int64
	for _, c := range cands {
		if c.target >= c.e.Resident {
			continue
		}
		gain := c.e.Size(c.e.Resident) - c.e.Size(c.target)
		if issuer.Request(c.e, c.target, true) {
			c.e.Wanted = c.target
			freed += gain
		}
	}

	ok := freed >= required
	logger.Info("紧急驱逐完成", "required", required, "freed", freed, "ok", ok)
	return freed, ok
}
