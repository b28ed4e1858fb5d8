package approval

type CreateFlowRequest struct {
	Name        string `json:"name" binding:"required,max=128"`
	Description string `json:"description" binding:"max=500"`
}

// SetRetireFlowRequest binds a flow to an asset class. A zero flow id clears
// the binding.
type SetRetireFlowRequest struct {
	FlowID uint `json:"flow_id"`
}

type ResolveFormRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=approved rejected"`
	Comment string `json:"comment" binding:"max=500"`
}
