package mocks

import (
	"context"

	"expenseanalyzer/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Analyze(ctx context.Context, doc *model.UploadedDocument, userText string) (model.Result, error) {
	args := m.Called(ctx, doc, userText)
	return args.Get(0).(model.Result), args.Error(1)
}

func (m *MockAnalysisService) Model() string {
	args := m.Called()
	return args.String(0)
}
