package builder

// ordered 保持插入顺序的去重映射
type ordered[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

func newOrdered[K comparable, V any]() *ordered[K, V] {
	return &ordered[K, V]{values: make(map[K]V)}
}

// set 追加；键已存在时原位替换
func (o *ordered[K, V]) set(k K, v V) {
	if _, exists := o.values[k]; !exists {
		o.keys = append(o.keys, k)
	}
	o.values[k] = v
}

// insert 移除已有条目后插入到 index，index 会被限制在 [0, len]
func (o *ordered[K, V]) insert(index int, k K, v V) {
	o.remove(k)
	if index < 0 {
		index = 0
	}
	if index > len(o.keys) {
		index = len(o.keys)
	}
	o.keys = append(o.keys, k)
	copy(o.keys[index+1:], o.keys[index:])
	o.keys[index] = k
	o.values[k] = v
}

func (o *ordered[K, V]) remove(k K) bool {
	if _, exists := o.values[k]; !exists {
		return false
	}
	delete(o.values, k)
	for i, key := range o.keys {
		if key == k {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

func (o *ordered[K, V]) get(k K) (V, bool) {
	v, ok := o.values[k]
	return v, ok
}

func (o *ordered[K, V]) has(k K) bool {
	_, ok := o.values[k]
	return ok
}

func (o *ordered[K, V]) len() int {
	return len(o.keys)
}

func (o *ordered[K, V]) index(k K) int {
	for i, key := range o.keys {
		if key == k {
			return i
		}
	}
	return -1
}

func (o *ordered[K, V]) each(fn func(K, V)) {
	for _, k := range o.keys {
		fn(k, o.values[k])
	}
}

func (o *ordered[K, V]) list() []V {
	out := make([]V, 0, len(o.keys))
	for _, k := range o.keys {
		out = append(out, o.values[k])
	}
	return out
}
