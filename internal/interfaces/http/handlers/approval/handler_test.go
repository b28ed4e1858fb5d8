package approval

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdesk/assetdesk/internal/application/approval/dto"
	"github.com/assetdesk/assetdesk/internal/application/approval/usecases"
	"github.com/assetdesk/assetdesk/internal/domain/approval"
	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/interfaces/http/handlers/testutil"
)

type mockCreateFlowUC struct {
	result *dto.FlowDTO
	err    error
}

func (m *mockCreateFlowUC) Execute(_ context.Context, _ usecases.CreateFlowCommand) (*dto.FlowDTO, error) {
	return m.result, m.err
}

type mockDeleteFlowUC struct {
	flowID uint
	err    error
}

func (m *mockDeleteFlowUC) Execute(_ context.Context, flowID uint) error {
	m.flowID = flowID
	return m.err
}

type mockSetRetireFlowUC struct {
	cmd    usecases.SetRetireFlowCommand
	result *dto.RetireFlowDTO
	err    error
}

func (m *mockSetRetireFlowUC) Execute(_ context.Context, cmd usecases.SetRetireFlowCommand) (*dto.RetireFlowDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockGetRetireFlowUC struct {
	result *dto.RetireFlowDTO
	err    error
}

func (m *mockGetRetireFlowUC) Execute(_ context.Context, _ string) (*dto.RetireFlowDTO, error) {
	return m.result, m.err
}

type mockResolveFormUC struct {
	cmd    usecases.ResolveFormCommand
	result *dto.FormDTO
	err    error
}

func (m *mockResolveFormUC) Execute(_ context.Context, cmd usecases.ResolveFormCommand) (*dto.FormDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type testDeps struct {
	createFlowUC    usecases.CreateFlowExecutor
	listFlowsUC     usecases.ListFlowsExecutor
	deleteFlowUC    usecases.DeleteFlowExecutor
	setRetireFlowUC usecases.SetRetireFlowExecutor
	getRetireFlowUC usecases.GetRetireFlowExecutor
	getFormUC       usecases.GetFormExecutor
	resolveFormUC   usecases.ResolveFormExecutor
}

func newTestHandler(deps testDeps) *Handler {
	return NewHandler(
		deps.createFlowUC,
		deps.listFlowsUC,
		deps.deleteFlowUC,
		deps.setRetireFlowUC,
		deps.getRetireFlowUC,
		deps.getFormUC,
		deps.resolveFormUC,
	)
}

func TestHandler_CreateFlow(t *testing.T) {
	handler := newTestHandler(testDeps{createFlowUC: &mockCreateFlowUC{result: &dto.FlowDTO{ID: 1, Name: "IT retire"}}})

	c, w := testutil.NewTestContext(http.MethodPost, "/flows", CreateFlowRequest{Name: "IT retire"})
	testutil.SetAuthContext(c, 1)

	handler.CreateFlow(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_DeleteFlow(t *testing.T) {
	mockUC := &mockDeleteFlowUC{}
	handler := newTestHandler(testDeps{deleteFlowUC: mockUC})

	c, _ := testutil.NewTestContext(http.MethodDelete, "/flows/4", nil)
	testutil.SetURLParam(c, "id", "4")

	handler.DeleteFlow(c)

	// gin defers the header write for bodiless responses to the engine.
	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Equal(t, uint(4), mockUC.flowID)
}

func TestHandler_SetRetireFlow(t *testing.T) {
	t.Run("bound", func(t *testing.T) {
		mockUC := &mockSetRetireFlowUC{result: &dto.RetireFlowDTO{Class: "device", FlowID: 2, FlowName: "IT retire"}}
		handler := newTestHandler(testDeps{setRetireFlowUC: mockUC})
		c, w := testutil.NewTestContext(http.MethodPut, "/retire-flows/device", SetRetireFlowRequest{FlowID: 2})
		testutil.SetAuthContext(c, 3)
		testutil.SetURLParam(c, "class", "device")

		handler.SetRetireFlow(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, usecases.SetRetireFlowCommand{Class: "device", FlowID: 2, UpdatedBy: 3}, mockUC.cmd)
	})

	t.Run("unknown flow", func(t *testing.T) {
		handler := newTestHandler(testDeps{setRetireFlowUC: &mockSetRetireFlowUC{err: approval.ErrFlowNotFound}})
		c, w := testutil.NewTestContext(http.MethodPut, "/retire-flows/device", SetRetireFlowRequest{FlowID: 99})
		testutil.SetAuthContext(c, 3)
		testutil.SetURLParam(c, "class", "device")

		handler.SetRetireFlow(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid class", func(t *testing.T) {
		handler := newTestHandler(testDeps{setRetireFlowUC: &mockSetRetireFlowUC{err: asset.ErrInvalidClass}})
		c, w := testutil.NewTestContext(http.MethodPut, "/retire-flows/printer", SetRetireFlowRequest{FlowID: 1})
		testutil.SetAuthContext(c, 3)
		testutil.SetURLParam(c, "class", "printer")

		handler.SetRetireFlow(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetRetireFlow_Missing(t *testing.T) {
	handler := newTestHandler(testDeps{getRetireFlowUC: &mockGetRetireFlowUC{
		result: &dto.RetireFlowDTO{Class: "device", FlowID: 2, Missing: true},
	}})

	c, w := testutil.NewTestContext(http.MethodGet, "/retire-flows/device", nil)
	testutil.SetURLParam(c, "class", "device")

	handler.GetRetireFlow(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"missing":true`)
}

func TestHandler_ResolveForm(t *testing.T) {
	t.Run("approved", func(t *testing.T) {
		mockUC := &mockResolveFormUC{result: &dto.FormDTO{UUID: "f-1", Status: "approved"}}
		handler := newTestHandler(testDeps{resolveFormUC: mockUC})
		c, w := testutil.NewTestContext(http.MethodPost, "/approvals/f-1/resolve", ResolveFormRequest{Outcome: "approved", Comment: "ok"})
		testutil.SetAuthContext(c, 8)
		testutil.SetURLParam(c, "uuid", "f-1")

		handler.ResolveForm(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, usecases.ResolveFormCommand{FormUUID: "f-1", Outcome: "approved", ActorID: 8, Comment: "ok"}, mockUC.cmd)
	})

	t.Run("unknown outcome", func(t *testing.T) {
		handler := newTestHandler(testDeps{})
		c, w := testutil.NewTestContext(http.MethodPost, "/approvals/f-1/resolve", map[string]string{"outcome": "maybe"})
		testutil.SetAuthContext(c, 8)
		testutil.SetURLParam(c, "uuid", "f-1")

		handler.ResolveForm(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already resolved", func(t *testing.T) {
		handler := newTestHandler(testDeps{resolveFormUC: &mockResolveFormUC{err: approval.ErrFormAlreadyResolved}})
		c, w := testutil.NewTestContext(http.MethodPost, "/approvals/f-1/resolve", ResolveFormRequest{Outcome: "rejected"})
		testutil.SetAuthContext(c, 8)
		testutil.SetURLParam(c, "uuid", "f-1")

		handler.ResolveForm(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.False(t, resp.Success)
	})
}
