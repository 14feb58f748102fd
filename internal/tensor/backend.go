package tensor

// Backend is the capability set a compute device must provide for sentence
// scoring: elementwise arithmetic, softmax normalization, label gathering,
// masked reduction, ordered concatenation and dtype conversion.
//
// Implementations:
//   - backend/cpu: pure Go reference implementation
//   - backend/webgpu: GPU compute via WGSL shaders, CPU delegate for the rest
//
// Operations panic on shape or dtype violations; those are programming
// errors, not runtime conditions.
type Backend interface {
	// Element-wise binary operations with broadcasting.
	Add(a, b *RawTensor) *RawTensor // Element-wise addition.
	Sub(a, b *RawTensor) *RawTensor // Element-wise subtraction.
	Mul(a, b *RawTensor) *RawTensor // Element-wise multiplication.
	Div(a, b *RawTensor) *RawTensor // Element-wise division.

	// Scalar operations (element-wise with scalar).
	AddScalar(x *RawTensor, scalar float64) *RawTensor // Add scalar.
	SubScalar(x *RawTensor, scalar float64) *RawTensor // Subtract scalar.
	MulScalar(x *RawTensor, scalar float64) *RawTensor // Multiply by scalar.
	DivScalar(x *RawTensor, scalar float64) *RawTensor // Divide by scalar.

	// Math operations (element-wise).
	Exp(x *RawTensor) *RawTensor // Exponential.
	Log(x *RawTensor) *RawTensor // Natural logarithm.

	// Normalization.
	Softmax(x *RawTensor, dim int) *RawTensor // Softmax along dimension.

	// Comparison operations (element-wise, return bool tensor).
	NotEqual(a, b *RawTensor) *RawTensor // a != b.
	Lower(a, b *RawTensor) *RawTensor    // a < b.

	// Indexing operations.
	Gather(x *RawTensor, dim int, index *RawTensor) *RawTensor // Select elements along dim using index tensor.
	Where(condition, x, y *RawTensor) *RawTensor               // Conditional element selection.

	// Reduction operations.
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor // Sum along dimension.

	// Manipulation operations.
	Cat(tensors []*RawTensor, dim int) *RawTensor // Concatenate along dimension.
	Unsqueeze(x *RawTensor, dim int) *RawTensor   // Add dimension of size 1.
	Squeeze(x *RawTensor, dim int) *RawTensor     // Remove dimension of size 1.

	// Type conversion.
	Cast(x *RawTensor, dtype DataType) *RawTensor // Cast to different data type.

	// Metadata.
	Name() string   // Backend name (e.g., "CPU", "WebGPU").
	Device() Device // Device type.
}
