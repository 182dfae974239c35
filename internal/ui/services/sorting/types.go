package sorting

// Order is how the item catalog is listed
type Order int

const (
	OrderCatalog Order = iota // as configured
	OrderLabel                // alphabetical, case folded
	OrderButtons              // most buttons first
)

var orders = []Order{OrderCatalog, OrderLabel, OrderButtons}

func (o Order) String() string {
	switch o {
	case OrderCatalog:
		return "catalog"
	case OrderLabel:
		return "name"
	case OrderButtons:
		return "buttons"
	default:
		return "unknown"
	}
}

// State represents the sorting state
type State struct {
	Current Order
}

// OrderChangedEvent is published when the order changes
type OrderChangedEvent struct {
	Old Order
	New Order
}
