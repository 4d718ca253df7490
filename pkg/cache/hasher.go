package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// EdgeSpec описывает ребро сети для вычисления канонического хеша
type EdgeSpec struct {
	From     int
	To       int
	Capacity int64
}

// NetworkHash вычисляет хеш сети для использования как ключ кэша.
// Параллельные рёбра учитываются: одинаковые пары (from, to) сортируются
// дополнительно по пропускной способности, а кратность попадает в хеш.
func NetworkHash(nodeCount, source, sink int, edges []EdgeSpec) string {
	data := networkToCanonical(nodeCount, source, sink, edges)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}

// networkToCanonical создаёт детерминированное представление сети
func networkToCanonical(nodeCount, source, sink int, edges []EdgeSpec) []byte {
	sorted := make([]EdgeSpec, len(edges))
	copy(sorted, edges)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].From != sorted[j].From {
			return sorted[i].From < sorted[j].From
		}
		if sorted[i].To != sorted[j].To {
			return sorted[i].To < sorted[j].To
		}
		return sorted[i].Capacity < sorted[j].Capacity
	})

	var result []byte

	// Размер, source и sink
	result = append(result, []byte(fmt.Sprintf("n:%d;s:%d;t:%d;", nodeCount, source, sink))...)

	// Рёбра
	for _, e := range sorted {
		result = append(result, []byte(fmt.Sprintf("e:%d:%d:%d;", e.From, e.To, e.Capacity))...)
	}

	return result
}

// BuildSolveKey строит ключ кэша для результата решения
func BuildSolveKey(networkHash, algorithm string) string {
	return fmt.Sprintf("solve:%s:%s", algorithm, networkHash)
}

// QuickHash быстрый хеш для произвольных данных
func QuickHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ShortHash короткий хеш (16 символов)
func ShortHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}
