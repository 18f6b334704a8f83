package value

// Value is a node in a value tree.
type Value interface {
	Type() *Type
	// Equal reports structural equality: same type and recursively equal contents.
	Equal(other Value) bool
	// Clone returns a deep copy that shares nothing with the receiver.
	Clone() Value
	// Reset restores the default state the value had when created by Type.New.
	Reset()
	String() string

	assign(src Value) error
	sealed()
}

func (*Primitive) sealed() {}
func (*Array) sealed()     {}
func (*Sequence) sealed()  {}
func (*Struct) sealed()    {}

// Assign copies src into dst after checking that the shapes are compatible.
// dst keeps its identity as a node: references obtained from it stay valid.
func Assign(dst, src Value) error {
	if dst == nil || src == nil {
		return errNilValue
	}
	return dst.assign(src)
}
