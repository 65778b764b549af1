package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/g-m-twostay/intrusive/Trees"
	"github.com/google/btree"
	"github.com/petar/GoLLRB/llrb"
	"github.com/rs/zerolog"
)

const btreeDegree = 32

var treeNames = []string{"aa", "redblack", "btree", "llrb"}

// orderedSet is a tree being compared, reduced to int keys.
type orderedSet = Trees.Tree[int]

var (
	_ orderedSet = (*aaSet)(nil)
	_ orderedSet = rbSet{}
	_ orderedSet = btSet{}
	_ orderedSet = llrbSet{}
)

type aaItem = Trees.Item[int, struct{}]

// aaSet keeps its records in an Arena, so a full workload allocates only slabs.
type aaSet struct {
	tree  *Trees.AATree[aaItem, *aaItem]
	arena *Trees.Arena[aaItem, *aaItem]
	key   aaItem
}

func newAASet(slab int) *aaSet {
	arena := Trees.NewArena[aaItem](slab)
	return &aaSet{tree: Trees.NewOrdered[int, struct{}](arena.Free), arena: arena}
}

func (u *aaSet) Insert(k int) bool {
	x := u.arena.Alloc()
	x.Key = k
	if u.tree.Insert(x) {
		return true
	}
	u.arena.Free(x)
	return false
}

func (u *aaSet) Remove(k int) bool {
	u.key.Key = k
	return u.tree.Remove(&u.key)
}

func (u *aaSet) Has(k int) bool {
	u.key.Key = k
	return u.tree.Has(&u.key)
}

func (u *aaSet) Len() int {
	return u.tree.Len()
}

func (u *aaSet) Ascend(f func(k int) bool) {
	u.tree.Ascend(func(x *aaItem) bool { return f(x.Key) })
}

func (u *aaSet) Check() error {
	return u.tree.Check()
}

type rbSet struct{ t *redblacktree.Tree }

func newRBSet() rbSet {
	return rbSet{redblacktree.NewWithIntComparator()}
}

func (u rbSet) Insert(k int) bool {
	if _, found := u.t.Get(k); found {
		return false
	}
	u.t.Put(k, struct{}{})
	return true
}

func (u rbSet) Remove(k int) bool {
	if _, found := u.t.Get(k); !found {
		return false
	}
	u.t.Remove(k)
	return true
}

func (u rbSet) Has(k int) bool {
	_, found := u.t.Get(k)
	return found
}

func (u rbSet) Len() int {
	return u.t.Size()
}

func (u rbSet) Ascend(f func(k int) bool) {
	for it := u.t.Iterator(); it.Next(); {
		if !f(it.Key().(int)) {
			return
		}
	}
}

type btSet struct{ t *btree.BTreeG[int] }

func (u btSet) Insert(k int) bool {
	_, replaced := u.t.ReplaceOrInsert(k)
	return !replaced
}

func (u btSet) Remove(k int) bool {
	_, found := u.t.Delete(k)
	return found
}

func (u btSet) Has(k int) bool {
	return u.t.Has(k)
}

func (u btSet) Len() int {
	return u.t.Len()
}

func (u btSet) Ascend(f func(k int) bool) {
	u.t.Ascend(f)
}

type llrbSet struct{ t *llrb.LLRB }

func (u llrbSet) Insert(k int) bool {
	return u.t.ReplaceOrInsert(llrb.Int(k)) == nil
}

func (u llrbSet) Remove(k int) bool {
	return u.t.Delete(llrb.Int(k)) != nil
}

func (u llrbSet) Has(k int) bool {
	return u.t.Has(llrb.Int(k))
}

func (u llrbSet) Len() int {
	return u.t.Len()
}

func (u llrbSet) Ascend(f func(k int) bool) {
	if u.t.Len() == 0 {
		return
	}
	u.t.AscendGreaterOrEqual(u.t.Min(), func(i llrb.Item) bool { return f(int(i.(llrb.Int))) })
}

func newSet(name string, slab int) (orderedSet, error) {
	switch name {
	case "aa":
		return newAASet(slab), nil
	case "redblack":
		return newRBSet(), nil
	case "btree":
		return btSet{btree.NewG[int](btreeDegree, func(a, b int) bool { return a < b })}, nil
	case "llrb":
		return llrbSet{llrb.New()}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownTree, name)
}

// workload is one timed phase. prepare runs untimed on a fresh set; run is timed and
// reports how many operations it performed.
type workload struct {
	name    string
	prepare func(s orderedSet, keys []int)
	run     func(s orderedSet, keys []int, cfg WorkloadConfig) int
}

var sink bool

func fill(s orderedSet, keys []int) {
	for _, k := range keys {
		s.Insert(k)
	}
}

var workloads = []workload{
	{
		name:    "insert",
		prepare: func(orderedSet, []int) {},
		run: func(s orderedSet, keys []int, _ WorkloadConfig) int {
			fill(s, keys)
			return len(keys)
		},
	},
	{
		name:    "remove",
		prepare: fill,
		run: func(s orderedSet, keys []int, cfg WorkloadConfig) int {
			n := int(float64(len(keys)) * cfg.RemoveRatio)
			for _, k := range keys[:n] {
				sink = s.Remove(k)
			}
			return n
		},
	},
	{
		// Half of the lookups hit, half miss above the largest key.
		name:    "query",
		prepare: fill,
		run: func(s orderedSet, keys []int, cfg WorkloadConfig) int {
			n := int(float64(len(keys)) * cfg.QueryRatio)
			for i, k := range keys[:n] {
				sink = s.Has(k)
				sink = s.Has(len(keys) + i)
			}
			return 2 * n
		},
	},
}

// result is the timing of one workload on one tree across cfg.Repeat samples.
type result struct {
	Tree     string
	Workload string
	Ops      int
	Samples  []float64 // ns per operation
	Mean     float64
	Stddev   float64
}

func meanStddev(cs []float64) (avg, stddev float64) {
	if len(cs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range cs {
		sum += v
	}
	avg = sum / float64(len(cs))
	sum = 0
	for _, v := range cs {
		a := v - avg
		sum += a * a
	}
	return avg, math.Sqrt(sum / float64(len(cs)))
}

func setBenchtime(d string) error {
	if d == "" {
		return nil
	}
	if err := flag.Set("test.benchtime", d); err != nil {
		return fmt.Errorf("benchtime %q: %w", d, err)
	}
	return nil
}

// runWorkloads times every workload on every configured tree. Trees that can
// validate themselves are checked after each timed pass.
func runWorkloads(cfg WorkloadConfig, log zerolog.Logger) ([]result, error) {
	if err := setBenchtime(cfg.Benchtime); err != nil {
		return nil, err
	}
	keys := rand.New(rand.NewSource(cfg.Seed)).Perm(cfg.Size)
	var results []result
	for _, name := range cfg.Trees {
		if _, err := newSet(name, cfg.ArenaSlab); err != nil {
			return nil, err
		}
		for _, w := range workloads {
			r := result{Tree: name, Workload: w.name}
			var bad error
			for i := range cfg.Repeat {
				br := testing.Benchmark(func(b *testing.B) {
					for range b.N {
						b.StopTimer()
						s, _ := newSet(name, cfg.ArenaSlab)
						w.prepare(s, keys)
						b.StartTimer()
						r.Ops = w.run(s, keys, cfg)
						b.StopTimer()
						if c, ok := s.(interface{ Check() error }); ok && bad == nil {
							bad = c.Check()
						}
						b.StartTimer()
					}
				})
				if r.Ops > 0 {
					r.Samples = append(r.Samples, float64(br.NsPerOp())/float64(r.Ops))
				}
				log.Debug().Str("tree", name).Str("workload", w.name).
					Int("sample", i).Int("n", br.N).Dur("elapsed", br.T).Msg("sampled")
			}
			if bad != nil {
				return nil, fmt.Errorf("%s after %s: %w", name, w.name, bad)
			}
			r.Mean, r.Stddev = meanStddev(r.Samples)
			log.Info().Str("tree", name).Str("workload", w.name).
				Int("ops", r.Ops).Float64("ns_per_op", r.Mean).Msg("measured")
			results = append(results, r)
		}
	}
	return results, nil
}
