package main

import (
	"errors"
	"fmt"
	"math/rand"
	"unsafe"

	"github.com/dustin/go-humanize"
	"github.com/g-m-twostay/intrusive/Trees"
	"github.com/rs/zerolog"
)

var (
	ErrMismatch  = errors.New("aa tree disagrees with the red-black oracle")
	ErrViolation = errors.New("contract violation")
	ErrLeak      = errors.New("records not returned to the arena")
)

// runCheck replays a random insert/remove/lookup sequence against an arena-backed
// AA tree and a red-black oracle, validating the AA tree after every mutation.
func runCheck(cfg CheckConfig, slab int, log zerolog.Logger) (err error) {
	prev := Trees.SetFailHandler(func(e error) {
		log.Error().Err(e).Msg("tree contract violated")
	})
	defer Trees.SetFailHandler(prev)
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("%w: %w", ErrViolation, e)
		}
	}()

	rg := rand.New(rand.NewSource(cfg.Seed))
	aa, rb := newAASet(slab), newRBSet()
	step := max(cfg.Ops/10, 1)
	for i := range cfg.Ops {
		k := rg.Intn(cfg.KeyRange)
		var op string
		var got, want bool
		switch rg.Intn(3) {
		case 0:
			op, want, got = "remove", rb.Remove(k), aa.Remove(k)
		case 1:
			op, want, got = "has", rb.Has(k), aa.Has(k)
		default:
			op, want, got = "insert", rb.Insert(k), aa.Insert(k)
		}
		if got != want {
			return fmt.Errorf("%w: step %d %s %d: got %t, want %t", ErrMismatch, i, op, k, got, want)
		}
		if aa.Len() != rb.Len() {
			return fmt.Errorf("%w: step %d: size %d, want %d", ErrMismatch, i, aa.Len(), rb.Len())
		}
		if op != "has" {
			if err := aa.Check(); err != nil {
				return fmt.Errorf("step %d %s %d: %w", i, op, k, err)
			}
		}
		if (i+1)%step == 0 {
			log.Info().Int("step", i+1).Int("size", aa.Len()).Msg("progress")
		}
	}

	if err := sameOrder(aa, rb); err != nil {
		return err
	}
	var x aaItem
	log.Info().Int("size", aa.Len()).
		Str("arena", humanize.Bytes(uint64(aa.arena.Size())*uint64(unsafe.Sizeof(x)))).
		Msg("oracle agrees")
	aa.tree.Clear()
	if n := aa.arena.Used(); n != 0 {
		return fmt.Errorf("%w: %d still in use after Clear", ErrLeak, n)
	}
	return nil
}

func sameOrder(got, want orderedSet) error {
	var a, b []int
	got.Ascend(func(k int) bool { a = append(a, k); return true })
	want.Ascend(func(k int) bool { b = append(b, k); return true })
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d keys in order, want %d", ErrMismatch, len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			return fmt.Errorf("%w: position %d holds %d, want %d", ErrMismatch, i, a[i], b[i])
		}
	}
	return nil
}
