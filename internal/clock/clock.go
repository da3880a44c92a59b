package clock

import (
	"sync"
	"time"
)

// Monotonic выдает строго возрастающие метки времени для упорядочивания отложенных операций.
// Метка близка к wall-clock (UnixNano), но никогда не повторяется и не уменьшается,
// даже если системное время откатилось назад: next = max(last+1, now).
type Monotonic struct {
	now  func() time.Time // источник времени (подменяется в тестах)
	last int64            // последняя выданная или наблюдаемая метка
	mu   sync.Mutex
}

// New создает часы на системном времени.
func New() *Monotonic {
	return NewWithSource(time.Now)
}

// NewWithSource создает часы с заданным источником времени.
// Используется для тестирования.
func NewWithSource(now func() time.Time) *Monotonic {
	return &Monotonic{now: now}
}

// Stamp возвращает новую метку, строго большую всех предыдущих.
func (c *Monotonic) Stamp() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := c.now().UnixNano()
	if ts <= c.last {
		ts = c.last + 1
	}
	c.last = ts
	return ts
}

// Observe сдвигает часы вперед до ts, если ts больше последней метки.
// Используется для восстановления состояния после перезапуска (максимальный
// created_at из хранилища), чтобы новые метки не пересекались со старыми.
func (c *Monotonic) Observe(ts int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ts > c.last {
		c.last = ts
	}
}

// Last возвращает последнюю метку без изменения часов.
func (c *Monotonic) Last() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.last
}
