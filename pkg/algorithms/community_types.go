package algorithms

// Community represents a detected group of authors
type Community struct {
	ID      int      `json:"id"`
	Members []string `json:"members"`
	Size    int      `json:"size"`
	Density float64  `json:"density"` // Edge density within community
}

// Partition assigns every author to exactly one community. Communities
// are numbered from 0 in order of descending size.
type Partition struct {
	Communities   []*Community
	Modularity    float64        // Quality measure of the partitioning
	NodeCommunity map[string]int // Author -> Community ID
}

// Count returns the number of communities
func (p *Partition) Count() int {
	return len(p.Communities)
}

// Of returns the community id of an author, or -1 when unknown
func (p *Partition) Of(name string) int {
	if id, ok := p.NodeCommunity[name]; ok {
		return id
	}
	return -1
}

// Groups returns the member lists in community id order
func (p *Partition) Groups() [][]string {
	groups := make([][]string, len(p.Communities))
	for i, c := range p.Communities {
		groups[i] = c.Members
	}
	return groups
}
