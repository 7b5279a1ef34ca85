package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/taxdesk/taxdesk_app/internal/apperrors"
	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	portssvc "github.com/taxdesk/taxdesk_app/internal/core/ports/services"
	"github.com/taxdesk/taxdesk_app/internal/core/services"
	"github.com/taxdesk/taxdesk_app/internal/dto"
)

type TaxCategoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTaxCategoryRepository
	service  portssvc.TaxCategorySvcFacade
	clientID string
	userID   string
}

func (suite *TaxCategoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTaxCategoryRepository)
	suite.service = services.NewTaxCategoryService(suite.mockRepo)
	suite.clientID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *TaxCategoryServiceTestSuite) TestResolveCategory_CreatesWhenAbsent() {
	ctx := context.Background()
	suite.mockRepo.On("ListCategoriesByClient", ctx, suite.clientID).
		Return([]domain.TaxCategory{}, nil).Once()
	suite.mockRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.TaxCategory) bool {
		return c.ClientID == suite.clientID && c.Name == "Asset" && c.CreatedBy == suite.userID
	})).Return(nil).Once()

	category, err := suite.service.ResolveCategory(ctx, suite.clientID, "Asset", suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Asset", category.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

// Resolving "Uncategorized" and "uncategorized" in sequence must yield the
// same category and create at most one row.
func (suite *TaxCategoryServiceTestSuite) TestResolveCategory_CaseInsensitiveIdempotent() {
	ctx := context.Background()
	suite.mockRepo.On("ListCategoriesByClient", ctx, suite.clientID).
		Return([]domain.TaxCategory{}, nil).Once()
	suite.mockRepo.On("SaveCategory", ctx, mock.AnythingOfType("domain.TaxCategory")).
		Return(nil).Once()

	first, err := suite.service.ResolveCategory(ctx, suite.clientID, "Uncategorized", suite.userID)
	suite.Require().NoError(err)

	second, err := suite.service.ResolveCategory(ctx, suite.clientID, "uncategorized", suite.userID)
	suite.Require().NoError(err)

	suite.Equal(first.TaxCategoryID, second.TaxCategoryID)
	suite.Equal("Uncategorized", second.Name) // original casing preserved
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveCategory", 1)
}

// A category created outside this service instance (another process, or a
// second instance over the same store) makes the insert hit the unique index.
// Resolution must reload and return the persisted row instead of failing.
func (suite *TaxCategoryServiceTestSuite) TestResolveCategory_SelfHealsOnStaleCache() {
	ctx := context.Background()
	persisted := domain.TaxCategory{
		TaxCategoryID: uuid.NewString(),
		ClientID:      suite.clientID,
		Name:          "Travel",
	}
	// First load sees nothing, the insert collides, the reload sees the row.
	suite.mockRepo.On("ListCategoriesByClient", ctx, suite.clientID).
		Return([]domain.TaxCategory{}, nil).Once()
	suite.mockRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.TaxCategory) bool {
		return c.ClientID == suite.clientID && c.Name == "Travel"
	})).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("ListCategoriesByClient", ctx, suite.clientID).
		Return([]domain.TaxCategory{persisted}, nil).Once()

	category, err := suite.service.ResolveCategory(ctx, suite.clientID, "Travel", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(persisted.TaxCategoryID, category.TaxCategoryID)
	suite.mockRepo.AssertExpectations(suite.T())

	// The reloaded cache serves subsequent resolves without another insert.
	again, err := suite.service.ResolveCategory(ctx, suite.clientID, "travel", suite.userID)
	suite.Require().NoError(err)
	suite.Equal(persisted.TaxCategoryID, again.TaxCategoryID)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveCategory", 1)
}

func (suite *TaxCategoryServiceTestSuite) TestResolveCategory_EmptyNameFallsBack() {
	ctx := context.Background()
	uncategorized := domain.TaxCategory{
		TaxCategoryID: uuid.NewString(),
		ClientID:      suite.clientID,
		Name:          domain.UncategorizedName,
	}
	suite.mockRepo.On("ListCategoriesByClient", ctx, suite.clientID).
		Return([]domain.TaxCategory{uncategorized}, nil).Once()

	category, err := suite.service.ResolveCategory(ctx, suite.clientID, "   ", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(uncategorized.TaxCategoryID, category.TaxCategoryID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
}

func (suite *TaxCategoryServiceTestSuite) TestCreateCategory_RejectsCaseInsensitiveDuplicate() {
	ctx := context.Background()
	existing := domain.TaxCategory{
		TaxCategoryID: uuid.NewString(),
		ClientID:      suite.clientID,
		Name:          "Fixed Assets",
	}
	suite.mockRepo.On("ListCategoriesByClient", ctx, suite.clientID).
		Return([]domain.TaxCategory{existing}, nil).Once()

	category, err := suite.service.CreateCategory(ctx, suite.clientID, dto.CreateTaxCategoryRequest{Name: "fixed assets"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(category)
}

func (suite *TaxCategoryServiceTestSuite) TestDeleteCategory_RefusedWhileReferenced() {
	ctx := context.Background()
	category := domain.TaxCategory{
		TaxCategoryID: uuid.NewString(),
		ClientID:      suite.clientID,
		Name:          "Liability",
	}
	suite.mockRepo.On("FindCategoryByID", ctx, category.TaxCategoryID).
		Return(&category, nil).Once()
	suite.mockRepo.On("CountAccountsByCategory", ctx, category.TaxCategoryID).
		Return(3, nil).Once()

	err := suite.service.DeleteCategory(ctx, suite.clientID, category.TaxCategoryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteCategory", mock.Anything, mock.Anything)
}

func (suite *TaxCategoryServiceTestSuite) TestDeleteCategory_WrongClient() {
	ctx := context.Background()
	category := domain.TaxCategory{
		TaxCategoryID: uuid.NewString(),
		ClientID:      uuid.NewString(), // belongs to someone else
		Name:          "Equity",
	}
	suite.mockRepo.On("FindCategoryByID", ctx, category.TaxCategoryID).
		Return(&category, nil).Once()

	err := suite.service.DeleteCategory(ctx, suite.clientID, category.TaxCategoryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TaxCategoryServiceTestSuite) TestDeleteCategory_Success() {
	ctx := context.Background()
	category := domain.TaxCategory{
		TaxCategoryID: uuid.NewString(),
		ClientID:      suite.clientID,
		Name:          "Revenue",
	}
	suite.mockRepo.On("FindCategoryByID", ctx, category.TaxCategoryID).
		Return(&category, nil).Once()
	suite.mockRepo.On("CountAccountsByCategory", ctx, category.TaxCategoryID).
		Return(0, nil).Once()
	suite.mockRepo.On("DeleteCategory", ctx, category.TaxCategoryID).
		Return(nil).Once()

	err := suite.service.DeleteCategory(ctx, suite.clientID, category.TaxCategoryID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestTaxCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaxCategoryServiceTestSuite))
}
