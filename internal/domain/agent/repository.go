package agent

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

// Repository defines agent descriptor storage. Implementations must be
// safe for concurrent use; a registration racing on the same
// deterministic id must not observe the id as free twice.
type Repository interface {
	// Insert stores a new agent. Returns ErrDuplicateID if the id is taken.
	Insert(a *Agent) error

	// Get returns the agent or (nil, false) when absent.
	Get(id string) (*Agent, bool)

	// List returns agents matching the filter in insertion order.
	List(filter Filter) []*Agent

	// Apply mutates the agent under the repository lock. Returns the
	// updated agent or (nil, false) when absent.
	Apply(id string, mutate func(*Agent)) (*Agent, bool)

	// Replace stores the agent under its id, overwriting any existing
	// entry.
	Replace(a *Agent)

	// Delete removes the agent. Returns false when absent.
	Delete(id string) bool
}
