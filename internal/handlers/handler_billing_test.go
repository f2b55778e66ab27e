package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sekolahpay/spp_billing_app/internal/apperrors"
	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	portssvc "github.com/sekolahpay/spp_billing_app/internal/core/ports/services"
	"github.com/sekolahpay/spp_billing_app/internal/dto"
	"github.com/sekolahpay/spp_billing_app/internal/handlers"
	"github.com/sekolahpay/spp_billing_app/internal/middleware"
	"github.com/sekolahpay/spp_billing_app/internal/platform/config"
	"github.com/sekolahpay/spp_billing_app/internal/utils"
)

// --- Mock BillingService ---
type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) CreateBilling(ctx context.Context, req dto.CreateBillingRequest, creatorUserID string) (*domain.StudentBilling, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentBilling), args.Error(1)
}

func (m *MockBillingService) GetBillingByID(ctx context.Context, billingID string) (*domain.StudentBilling, error) {
	args := m.Called(ctx, billingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentBilling), args.Error(1)
}

func (m *MockBillingService) GetBillingByStudent(ctx context.Context, studentID, academicYearID string) (*domain.StudentBilling, error) {
	args := m.Called(ctx, studentID, academicYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentBilling), args.Error(1)
}

func (m *MockBillingService) ListBillings(ctx context.Context) ([]domain.StudentBilling, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudentBilling), args.Error(1)
}

func (m *MockBillingService) ApplyPayment(ctx context.Context, billingID string, req dto.ApplyPaymentRequest, processedByUserID string) (*domain.StudentBilling, *domain.Payment, error) {
	args := m.Called(ctx, billingID, req, processedByUserID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.StudentBilling), args.Get(1).(*domain.Payment), args.Error(2)
}

func (m *MockBillingService) ApplyDiscount(ctx context.Context, billingID string, req dto.ApplyDiscountRequest, userID string) (*domain.StudentBilling, error) {
	args := m.Called(ctx, billingID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentBilling), args.Error(1)
}

func (m *MockBillingService) AssessLateFee(ctx context.Context, billingID string, userID string) (*domain.StudentBilling, error) {
	args := m.Called(ctx, billingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentBilling), args.Error(1)
}

func (m *MockBillingService) RefreshStatuses(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.BillingSvcFacade = (*MockBillingService)(nil)

// --- Test Suite ---
type BillingHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockBillingService
	cfg         *config.Config
}

func (suite *BillingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.cfg = &config.Config{
		JWTSecret:         "test-secret-key-that-is-long-enough",
		JWTIssuer:         "spp-billing-test",
		JWTExpiryDuration: time.Hour,
	}

	suite.router.Use(middleware.AuthMiddleware(suite.cfg))

	suite.mockService = new(MockBillingService)
	v1 := suite.router.Group("/api/v1")
	handlers.RegisterBillingRoutes(v1, suite.mockService)
}

func (suite *BillingHandlerTestSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(userID, string(domain.RoleKasir1), suite.cfg)
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *BillingHandlerTestSuite) doRequest(method, url, userID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func sampleBilling() *domain.StudentBilling {
	b := &domain.StudentBilling{
		StudentBillingID: "bill-1",
		StudentID:        "stu-1",
		InstitutionID:    "inst-1",
		AcademicYearID:   "year-2024",
		ClassroomID:      "class-1",
		FeeStructureID:   "fs-1",
		TotalFees:        decimal.NewFromInt(7800000),
		PaidAmount:       decimal.NewFromInt(800000),
		DiscountAmount:   decimal.Zero,
		LateFeeAmount:    decimal.Zero,
		NextDueDate:      time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Status:           domain.BillingCurrent,
		PaymentHistory:   []domain.Payment{},
	}
	b.RecalculateOutstanding()
	return b
}

// --- Test Cases ---

func (suite *BillingHandlerTestSuite) TestApplyPayment_Success() {
	billingID := "bill-1"
	userID := "kasir-1"
	payment := &domain.Payment{
		PaymentID:        "pay-1",
		StudentBillingID: billingID,
		StudentID:        "stu-1",
		Amount:           decimal.NewFromInt(800000),
		Method:           domain.MethodCash,
		PaymentDate:      time.Date(2024, 7, 5, 10, 0, 0, 0, time.UTC),
		ReceiptNumber:    "RCP-2024-000001",
		ProcessedBy:      userID,
		Status:           domain.PaymentCompleted,
	}

	suite.mockService.On("ApplyPayment",
		mock.Anything,
		billingID,
		mock.MatchedBy(func(req dto.ApplyPaymentRequest) bool {
			return req.Amount.Equal(decimal.NewFromInt(800000)) && req.Method == "cash"
		}),
		userID,
	).Return(sampleBilling(), payment, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/billings/"+billingID+"/payments", userID, gin.H{
		"amount": 800000,
		"method": "cash",
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.PaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("RCP-2024-000001", resp.ReceiptNumber)
	suite.Equal("Rp 800.000", resp.AmountFormatted)
	suite.Equal("completed", resp.Status)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BillingHandlerTestSuite) TestApplyPayment_Overpayment() {
	billingID := "bill-1"
	suite.mockService.On("ApplyPayment", mock.Anything, billingID, mock.Anything, "kasir-1").
		Return(nil, nil, fmt.Errorf("%w: amount 9000000, outstanding 7000000", apperrors.ErrOverpayment)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/billings/"+billingID+"/payments", "kasir-1", gin.H{
		"amount": 9000000,
		"method": "cash",
	})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *BillingHandlerTestSuite) TestApplyPayment_InvalidBody() {
	// method missing
	w := suite.doRequest(http.MethodPost, "/api/v1/billings/bill-1/payments", "kasir-1", gin.H{
		"amount": 800000,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ApplyPayment",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BillingHandlerTestSuite) TestApplyPayment_RequiresToken() {
	w := suite.doRequest(http.MethodPost, "/api/v1/billings/bill-1/payments", "", gin.H{
		"amount": 800000,
		"method": "cash",
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *BillingHandlerTestSuite) TestCreateBilling_Duplicate() {
	suite.mockService.On("CreateBilling", mock.Anything, mock.Anything, "admin-1").
		Return(nil, fmt.Errorf("%w: billing already exists", apperrors.ErrDuplicate)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/billings", "admin-1", gin.H{
		"studentId":      "stu-1",
		"academicYearId": "year-2024",
		"feeStructureId": "fs-1",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *BillingHandlerTestSuite) TestGetBilling_NotFound() {
	suite.mockService.On("GetBillingByID", mock.Anything, "missing").
		Return(nil, fmt.Errorf("%w: billing missing", apperrors.ErrNotFound)).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/billings/missing", "kasir-1", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *BillingHandlerTestSuite) TestListBillings_ByStudentAndYear() {
	suite.mockService.On("GetBillingByStudent", mock.Anything, "stu-1", "year-2024").
		Return(sampleBilling(), nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/billings?studentId=stu-1&academicYearId=year-2024", "kasir-1", nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.BillingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("bill-1", resp[0].ID)
	suite.Equal("Rp 7.000.000", resp[0].OutstandingAmountFormatted)
	suite.mockService.AssertNotCalled(suite.T(), "ListBillings", mock.Anything)
}

func (suite *BillingHandlerTestSuite) TestApplyDiscount_Success() {
	billing := sampleBilling()
	billing.DiscountAmount = decimal.NewFromInt(300000)
	billing.RecalculateOutstanding()

	suite.mockService.On("ApplyDiscount", mock.Anything, "bill-1",
		mock.MatchedBy(func(req dto.ApplyDiscountRequest) bool {
			return req.Reason == "beasiswa prestasi"
		}), "admin-1").
		Return(billing, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/billings/bill-1/discounts", "admin-1", gin.H{
		"amount": 300000,
		"reason": "beasiswa prestasi",
	})

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *BillingHandlerTestSuite) TestAssessLateFee_Conflict() {
	suite.mockService.On("AssessLateFee", mock.Anything, "bill-1", "admin-1").
		Return(nil, fmt.Errorf("%w: late fee already assessed", apperrors.ErrConflict)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/billings/bill-1/late-fees", "admin-1", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *BillingHandlerTestSuite) TestRefreshStatuses() {
	suite.mockService.On("RefreshStatuses", mock.Anything, "admin-1").Return(3, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/billings/refresh-statuses", "admin-1", nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp map[string]int
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(3, resp["updated"])
}

func TestBillingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BillingHandlerTestSuite))
}
