package main

import (
	"crypto/sha256"
	"encoding/json"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/alexshd/olsbench"
)

type order struct {
	ID       int      `json:"id"`
	Customer string   `json:"customer"`
	Items    []string `json:"items"`
	Total    float64  `json:"total"`
}

// catalog returns the built-in benchmarks in run order.
func catalog() []olsbench.Benchmark {
	payload64 := make([]byte, 64)
	payload1k := make([]byte, 1024)
	rng := rand.New(rand.NewSource(1))
	rng.Read(payload64)
	rng.Read(payload1k)

	ord := order{ID: 42, Customer: "acme", Items: []string{"bolt", "nut", "washer"}, Total: 17.25}

	return []olsbench.Benchmark{
		olsbench.Case("noop", func() struct{} {
			return struct{}{}
		}),

		olsbench.Case("hash/xxh64/64B", func() uint64 {
			return xxhash.Sum64(payload64)
		}),

		olsbench.Case("hash/xxh64/1KiB", func() uint64 {
			return xxhash.Sum64(payload1k)
		}),

		olsbench.Case("hash/sha256/1KiB", func() [32]byte {
			return sha256.Sum256(payload1k)
		}),

		olsbench.Case("strconv/itoa", func() string {
			return strconv.Itoa(1234567)
		}),

		olsbench.Case("json/encode", func() []byte {
			b, _ := json.Marshal(ord)
			return b
		}),

		olsbench.SetupCase("sort/ints/1k",
			func() []int {
				s := make([]int, 1000)
				for i := range s {
					s[i] = rng.Int()
				}
				return s
			},
			func(s []int) int {
				sort.Ints(s)
				return s[0]
			}),

		olsbench.DropCase("strings/builder/64",
			func() *strings.Builder {
				var b strings.Builder
				for i := 0; i < 64; i++ {
					b.WriteByte('x')
				}
				return &b
			},
			func(b *strings.Builder) { b.Reset() }),

		olsbench.Case("sleep/1ms", func() struct{} {
			time.Sleep(time.Millisecond)
			return struct{}{}
		}).Tuned(func(o olsbench.Options) olsbench.Options {
			if o.TimeBudget() > time.Second {
				return o.WithTimeBudget(time.Second)
			}
			return o
		}),
	}
}
