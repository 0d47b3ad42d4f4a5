package logger

// Progress logs a line every Every steps of a long loop and once more when
// the loop is done.
type Progress struct {
	Label string
	Total int
	Every int
	done  int
}

func NewProgress(label string, total, every int) *Progress {
	if every <= 0 {
		every = 1000
	}
	return &Progress{Label: label, Total: total, Every: every}
}

func (p *Progress) Step() {
	if p == nil {
		return
	}
	p.done++
	if p.done%p.Every == 0 && p.done < p.Total {
		Debug(p.Label, "done", p.done, "total", p.Total)
	}
}

func (p *Progress) Finish() {
	if p == nil {
		return
	}
	Info(p.Label+" finished", "done", p.done, "total", p.Total)
}

// Done reports how many steps have been recorded.
func (p *Progress) Done() int {
	return p.done
}
