package domain

// Reply is the outcome of evaluating one command.
type Reply interface {
	isReply()
}

type (
	// StatusReply is a simple acknowledgement such as OK.
	StatusReply struct{ Status string }

	// NilReply reports an absent key or a blocked conditional write.
	NilReply struct{}

	// IntegerReply carries a count or length.
	IntegerReply struct{ N int64 }

	// BulkReply carries a raw string value.
	BulkReply struct{ Text string }

	// MultiReply carries an ordered sequence of elements, possibly empty.
	MultiReply struct{ Items []string }

	// ErrorReply reports a per-command failure. The store is unchanged.
	ErrorReply struct{ Err error }
)

func (StatusReply) isReply()  {}
func (NilReply) isReply()     {}
func (IntegerReply) isReply() {}
func (BulkReply) isReply()    {}
func (MultiReply) isReply()   {}
func (ErrorReply) isReply()   {}

// OK is the write acknowledgement.
var OK = StatusReply{Status: "OK"}
