package neat

// Ledger is the global innovation history. Any two genomes that create a link
// between the same (source, target) pair receive the same innovation id.
type Ledger struct {
	innovation int
	history    map[int]map[int]int
}

// NewLedger creates an empty ledger. The first id handed out is 0.
func NewLedger() *Ledger {
	return &Ledger{
		innovation: NoInnovation,
		history:    make(map[int]map[int]int),
	}
}

// Innovate returns the innovation id for the link's (source, target) pair,
// allocating the next id the first time the pair is seen.
func (l *Ledger) Innovate(link ConnectionGene) int {
	targets, ok := l.history[link.In()]
	if !ok {
		targets = make(map[int]int)
		l.history[link.In()] = targets
	}
	if id, ok := targets[link.Out()]; ok {
		return id
	}
	l.innovation++
	targets[link.Out()] = l.innovation
	return l.innovation
}

// InnovateAll assigns innovation ids to every link in place. It must run once on
// the seed topology before the first population is built.
func (l *Ledger) InnovateAll(links []ConnectionGene) {
	for i := range links {
		links[i].Innovation = l.Innovate(links[i])
	}
}

// Lookup returns the recorded id for a pair without allocating one.
func (l *Ledger) Lookup(in, out int) (int, bool) {
	id, ok := l.history[in][out]
	return id, ok
}

// Current returns the most recently allocated id.
func (l *Ledger) Current() int { return l.innovation }

// Reset zeroes the counter for a fresh evolutionary run. History is kept.
func (l *Ledger) Reset() {
	l.innovation = NoInnovation
}

// Clear wipes recorded history. The counter is kept.
func (l *Ledger) Clear() {
	l.history = make(map[int]map[int]int)
}

func (l *Ledger) snapshot() map[int]map[int]int {
	history := make(map[int]map[int]int, len(l.history))
	for in, targets := range l.history {
		t := make(map[int]int, len(targets))
		for out, id := range targets {
			t[out] = id
		}
		history[in] = t
	}
	return history
}

// restoreLedger rebuilds a ledger from a snapshot taken with snapshot.
func restoreLedger(innovation int, history map[int]map[int]int) *Ledger {
	l := &Ledger{innovation: innovation, history: history}
	if l.history == nil {
		l.history = make(map[int]map[int]int)
	}
	return l
}
