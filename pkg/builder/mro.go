package builder

import (
	"fmt"
	"strings"
)

// linearize 按 C3 算法计算 name 的方法解析顺序
//
// parentsOf 返回目录中声明的父适配器，未知名称视为没有父类。
func linearize(name string, bases []string, parentsOf func(string) []string) ([]string, error) {
	memo := make(map[string][]string)
	visiting := make(map[string]bool)

	var lin func(n string, ps []string) ([]string, error)
	lin = func(n string, ps []string) ([]string, error) {
		if l, ok := memo[n]; ok {
			return l, nil
		}
		if visiting[n] {
			return nil, fmt.Errorf("%w: cyclic inheritance through %s", ErrMROConflict, n)
		}
		visiting[n] = true
		defer delete(visiting, n)

		seqs := make([][]string, 0, len(ps)+1)
		for _, p := range ps {
			l, err := lin(p, parentsOf(p))
			if err != nil {
				return nil, err
			}
			seqs = append(seqs, l)
		}
		seqs = append(seqs, ps)

		merged, err := c3merge(seqs)
		if err != nil {
			return nil, fmt.Errorf("%w: bases %s", err, strings.Join(ps, ", "))
		}
		l := append([]string{n}, merged...)
		memo[n] = l
		return l, nil
	}

	return lin(name, bases)
}

func c3merge(seqs [][]string) ([]string, error) {
	// 拷贝一份，合并过程会消耗序列
	work := make([][]string, 0, len(seqs))
	for _, s := range seqs {
		if len(s) > 0 {
			work = append(work, append([]string(nil), s...))
		}
	}

	var out []string
	for len(work) > 0 {
		candidate := ""
		for _, s := range work {
			if !inTail(s[0], work) {
				candidate = s[0]
				break
			}
		}
		if candidate == "" {
			return nil, ErrMROConflict
		}
		out = append(out, candidate)

		next := work[:0]
		for _, s := range work {
			if s[0] == candidate {
				s = s[1:]
			}
			if len(s) > 0 {
				next = append(next, s)
			}
		}
		work = next
	}
	return out, nil
}

func inTail(name string, seqs [][]string) bool {
	for _, s := range seqs {
		for _, n := range s[1:] {
			if n == name {
				return true
			}
		}
	}
	return false
}
