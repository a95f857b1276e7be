package probe

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"gonum.org/v1/gonum/mat"

	"tourOpt/internal/aco"
)

// CSV пишет события прогона строками разной длины:
//
//	newbest,<iteration>,<elapsed_ms>,<cost>
//	bestiniter,<iteration>,<elapsed_ms>,<cost>
//	iterinfo,<iteration>,<iter_ms>,<pheromone_sum>
//	failure,<iteration>,<ant>
//
// Первый столбец — имя события, так что строки одного типа легко
// отфильтровать. Ошибка записи запоминается и доступна через Err.
type CSV struct {
	w   *csv.Writer
	now func() time.Time

	start     time.Time
	iterStart time.Time
	iter      int
	pherSum   float64
	err       error
}

func NewCSV(w io.Writer) *CSV {
	return &CSV{w: csv.NewWriter(w), now: time.Now}
}

// Err возвращает первую ошибку записи.
func (c *CSV) Err() error { return c.err }

func (c *CSV) write(rec ...string) {
	if c.err != nil {
		return
	}
	c.err = c.w.Write(rec)
}

func (c *CSV) flush() {
	c.w.Flush()
	if c.err == nil {
		c.err = c.w.Error()
	}
}

func ms(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}

func cost(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (c *CSV) OnStart() {
	c.start = c.now()
}

func (c *CSV) OnIterationStart(iteration int) {
	c.iter = iteration
	c.iterStart = c.now()
}

func (c *CSV) OnIterationEnd(iteration int) {
	c.write("iterinfo", strconv.Itoa(iteration), ms(c.now().Sub(c.iterStart)), cost(c.pherSum))
	c.flush()
}

func (c *CSV) OnCurrentBest(best *aco.Solution) {
	c.write("bestiniter", strconv.Itoa(c.iter), ms(c.now().Sub(c.start)), cost(best.Cost))
}

func (c *CSV) OnNewBest(best *aco.Solution) {
	c.write("newbest", strconv.Itoa(c.iter), ms(c.now().Sub(c.start)), cost(best.Cost))
}

func (c *CSV) OnPheromoneUpdate(_, next mat.Matrix) {
	c.pherSum = mat.Sum(next)
}

func (c *CSV) OnConstructionFailure(iteration, ant int) {
	c.write("failure", strconv.Itoa(iteration), strconv.Itoa(ant))
}

func (c *CSV) OnEnd() {
	c.flush()
}
