package poolts

import "github.com/samuelfneumann/pomdpsearch/bandit"

// node is one POOLTSNode: a bandit over the action space plus
// lazily-allocated children. A leaf has no children; a non-leaf has
// exactly K children slots, individually nullable.
type node struct {
	bandit   bandit.Bandit
	children []*node
	isLeaf   bool
}

func newNode(factory func() bandit.Bandit) *node {
	return &node{bandit: factory(), isLeaf: true}
}

// expand reserves K nullable child slots and marks n as non-leaf.
func (n *node) expand(k int) {
	n.children = make([]*node, k)
	n.isLeaf = false
}

// getNext lazily attaches the child for action, popping a recycled
// node from pool if one is available.
func (n *node) getNext(action int, pool *Pool, factory func() bandit.Bandit) *node {
	if n.children[action] == nil {
		n.children[action] = pool.pop(factory)
	}
	return n.children[action]
}

// reset restores n to a fresh leaf with a cleared bandit, ready for
// reuse from the pool.
func (n *node) reset() {
	n.bandit.Reset()
	n.children = nil
	n.isLeaf = true
}

// saveToPool pushes n and every live descendant onto pool, each reset
// to a bare leaf. After this call no descendant pointer remains live.
func (n *node) saveToPool(pool *Pool) {
	for _, c := range n.children {
		if c != nil {
			c.saveToPool(pool)
		}
	}
	pool.push(n)
}

// Pool is a free-list of recycled nodes, avoiding allocation churn
// across SelectAction calls.
type Pool struct {
	free []*node
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	return &Pool{}
}

// pop returns a recycled node if the pool is nonempty, otherwise
// allocates a fresh one via factory.
func (p *Pool) pop(factory func() bandit.Bandit) *node {
	if len(p.free) == 0 {
		return newNode(factory)
	}
	n := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	return n
}

func (p *Pool) push(n *node) {
	n.reset()
	p.free = append(p.free, n)
}

// Size returns the number of nodes currently held in the free list.
func (p *Pool) Size() int {
	return len(p.free)
}
