package event_bus

// TableChanged is published after any mutation of a stored table.
const TableChanged EventType = "store.table.changed"

// TableChangedData carries the name of the table that was mutated.
type TableChangedData struct {
	Table string
}
