package recipe_test

import (
	"Recipe-App-API/domain"
	"Recipe-App-API/entities"
	"Recipe-App-API/pkg/catalog"
	"Recipe-App-API/pkg/recipe"
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeS3 struct{}

func (fakeS3) UploadFile(_ context.Context, key string, _ *multipart.FileHeader) (string, error) {
	return "https://bucket.s3.test.amazonaws.com/" + key, nil
}

func (fakeS3) DeleteFile(_ context.Context, _ string) error {
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Tag{},
		&entities.Ingredient{},
		&entities.Recipe{},
	))
	return db
}

func newRecipeService(t *testing.T) (recipe.RecipeService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := recipe.NewRecipeService(
		recipe.NewRecipeRepository(db),
		catalog.NewTagRepository(db),
		catalog.NewIngredientRepository(db),
		fakeS3{},
	)
	return svc, db
}

func createUser(t *testing.T, db *gorm.DB, email string) *entities.User {
	t.Helper()
	u := &entities.User{ID: uuid.New(), Email: email, Password: "x", IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func tagNames(res domain.RecipeResponse) []string {
	names := make([]string, 0, len(res.Tags))
	for _, tag := range res.Tags {
		names = append(names, tag.Name)
	}
	return names
}

func TestCreateRecipeWithNewTags(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "test@example.com")
	ctx := context.Background()

	res, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title:       "Test Recipe",
		TimeMinutes: 10,
		Price:       5.50,
		Tags:        []domain.TagDescriptor{{Name: "foo"}, {Name: "fruit"}},
	}, owner.ID.String())
	require.NoError(t, err)

	require.Len(t, res.Tags, 2)
	assert.ElementsMatch(t, []string{"foo", "fruit"}, tagNames(res))

	var tags []entities.Tag
	require.NoError(t, db.Find(&tags).Error)
	require.Len(t, tags, 2)
	for _, tag := range tags {
		assert.Equal(t, owner.ID, tag.UserID)
	}
}

func TestCreateRecipeReusesExistingTag(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "test@example.com")
	ctx := context.Background()

	existing := entities.Tag{UserID: owner.ID, Name: "fruit"}
	require.NoError(t, db.Create(&existing).Error)

	res, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title:       "Smoothie",
		TimeMinutes: 5,
		Price:       3.00,
		Tags:        []domain.TagDescriptor{{Name: "foo"}, {Name: "fruit"}},
	}, owner.ID.String())
	require.NoError(t, err)
	require.Len(t, res.Tags, 2)

	// No duplicate "fruit" row was created for this owner.
	var count int64
	require.NoError(t, db.Model(&entities.Tag{}).Where("name = ?", "fruit").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	for _, tag := range res.Tags {
		if tag.Name == "fruit" {
			assert.Equal(t, existing.ID, tag.ID)
		}
	}
}

func TestCreateRecipeWithIngredients(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "test@example.com")
	ctx := context.Background()

	qty := 2
	unit := "kg"
	res, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title:       "Apple Pie",
		TimeMinutes: 60,
		Price:       12.00,
		Ingredients: []domain.IngredientDescriptor{
			{Name: "apple", Quantity: &qty, Measurement: &unit},
			{Name: "flour"},
		},
	}, owner.ID.String())
	require.NoError(t, err)
	require.Len(t, res.Ingredients, 2)

	var ingredients []entities.Ingredient
	require.NoError(t, db.Find(&ingredients).Error)
	require.Len(t, ingredients, 2)
	for _, ing := range ingredients {
		assert.Equal(t, owner.ID, ing.UserID)
	}
}

func TestIngredientDescriptorsWithDifferentQuantityAreDistinct(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "test@example.com")
	ctx := context.Background()

	two, three := 2, 3
	res, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title:       "Double Apple",
		TimeMinutes: 10,
		Price:       4.00,
		Ingredients: []domain.IngredientDescriptor{
			{Name: "apple", Quantity: &two},
			{Name: "apple", Quantity: &three},
		},
	}, owner.ID.String())
	require.NoError(t, err)

	assert.Len(t, res.Ingredients, 2)

	var count int64
	require.NoError(t, db.Model(&entities.Ingredient{}).Where("name = ?", "apple").Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestReconcileIsIdempotent(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "test@example.com")
	ctx := context.Background()

	descriptors := []domain.TagDescriptor{{Name: "foo"}, {Name: "bar"}}
	created, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title:       "Idempotent",
		TimeMinutes: 10,
		Price:       2.00,
		Tags:        descriptors,
	}, owner.ID.String())
	require.NoError(t, err)

	// Patching the same descriptor list again must not add edges or rows.
	updated, err := svc.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{
		Tags: &descriptors,
	}, owner.ID.String())
	require.NoError(t, err)

	assert.Len(t, updated.Tags, 2)

	var count int64
	require.NoError(t, db.Model(&entities.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestReplaceTagsWithEmptyListClearsEdges(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "test@example.com")
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title:       "Cleared",
		TimeMinutes: 10,
		Price:       2.00,
		Tags:        []domain.TagDescriptor{{Name: "foo"}, {Name: "bar"}},
	}, owner.ID.String())
	require.NoError(t, err)

	empty := []domain.TagDescriptor{}
	updated, err := svc.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{
		Tags: &empty,
	}, owner.ID.String())
	require.NoError(t, err)

	assert.Empty(t, updated.Tags)

	// The tag rows themselves survive for other recipes.
	var count int64
	require.NoError(t, db.Model(&entities.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestUpdateWithoutTagsFieldLeavesAssociationsUntouched(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "test@example.com")
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title:       "Untouched",
		TimeMinutes: 10,
		Price:       2.00,
		Tags:        []domain.TagDescriptor{{Name: "foo"}},
	}, owner.ID.String())
	require.NoError(t, err)

	newTitle := "Renamed"
	updated, err := svc.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{
		Title: &newTitle,
	}, owner.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.Len(t, updated.Tags, 1)
}

func TestUpdateReplacesTagSet(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "test@example.com")
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title:       "Replaced",
		TimeMinutes: 10,
		Price:       2.00,
		Tags:        []domain.TagDescriptor{{Name: "breakfast"}},
	}, owner.ID.String())
	require.NoError(t, err)

	replacement := []domain.TagDescriptor{{Name: "lunch"}}
	updated, err := svc.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{
		Tags: &replacement,
	}, owner.ID.String())
	require.NoError(t, err)

	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "lunch", updated.Tags[0].Name)

	// "breakfast" still exists as a row, just detached.
	var count int64
	require.NoError(t, db.Model(&entities.Tag{}).Where("name = ?", "breakfast").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestReplaceRecipeOverwritesAllFields(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "test@example.com")
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title:       "Original",
		Description: "keeps you warm",
		TimeMinutes: 25,
		Price:       9.00,
		Link:        "https://example.com/original",
		Tags:        []domain.TagDescriptor{{Name: "winter"}},
	}, owner.ID.String())
	require.NoError(t, err)

	replaced, err := svc.ReplaceRecipe(ctx, created.ID, domain.CreateRecipeRequest{
		Title:       "Replaced",
		TimeMinutes: 10,
		Price:       4.00,
		Tags:        []domain.TagDescriptor{{Name: "summer"}},
	}, owner.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "Replaced", replaced.Title)
	assert.Equal(t, 10, replaced.TimeMinutes)
	assert.Equal(t, 4.00, replaced.Price)
	assert.Empty(t, replaced.Description)
	assert.Empty(t, replaced.Link)
	require.Len(t, replaced.Tags, 1)
	assert.Equal(t, "summer", replaced.Tags[0].Name)
}

func TestReplaceRecipeWithoutTagsClearsSet(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "test@example.com")
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title:       "Tagged",
		TimeMinutes: 25,
		Price:       9.00,
		Tags:        []domain.TagDescriptor{{Name: "winter"}},
	}, owner.ID.String())
	require.NoError(t, err)

	replaced, err := svc.ReplaceRecipe(ctx, created.ID, domain.CreateRecipeRequest{
		Title:       "Bare",
		TimeMinutes: 10,
		Price:       4.00,
	}, owner.ID.String())
	require.NoError(t, err)

	assert.Empty(t, replaced.Tags)

	// The detached tag row survives.
	var count int64
	require.NoError(t, db.Model(&entities.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestReplaceRecipeScopedToOwner(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "one@example.com")
	other := createUser(t, db, "two@example.com")
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title: "Private", TimeMinutes: 10, Price: 1.00,
	}, owner.ID.String())
	require.NoError(t, err)

	_, err = svc.ReplaceRecipe(ctx, created.ID, domain.CreateRecipeRequest{
		Title: "Hijacked", TimeMinutes: 5, Price: 2.00,
	}, other.ID.String())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestGetRecipesScopedToOwner(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "one@example.com")
	other := createUser(t, db, "two@example.com")
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{Title: "Mine", TimeMinutes: 10, Price: 1.00}, owner.ID.String())
	require.NoError(t, err)
	_, err = svc.CreateRecipe(ctx, domain.CreateRecipeRequest{Title: "Theirs", TimeMinutes: 10, Price: 1.00}, other.ID.String())
	require.NoError(t, err)

	recipes, err := svc.GetRecipes(ctx, owner.ID.String(), domain.RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Mine", recipes[0].Title)
}

func TestGetRecipesOrderedByIDDesc(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "test@example.com")
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		_, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{Title: title, TimeMinutes: 10, Price: 1.00}, owner.ID.String())
		require.NoError(t, err)
	}

	recipes, err := svc.GetRecipes(ctx, owner.ID.String(), domain.RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "Third", recipes[0].Title)
	assert.Equal(t, "First", recipes[2].Title)
}

func TestGetRecipesFilterByTagsIsOrWithinList(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "test@example.com")
	ctx := context.Background()

	curry, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title: "Curry", TimeMinutes: 30, Price: 5.00,
		Tags: []domain.TagDescriptor{{Name: "spicy"}},
	}, owner.ID.String())
	require.NoError(t, err)

	salad, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title: "Salad", TimeMinutes: 10, Price: 3.00,
		Tags: []domain.TagDescriptor{{Name: "fresh"}},
	}, owner.ID.String())
	require.NoError(t, err)

	_, err = svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title: "Toast", TimeMinutes: 5, Price: 1.00,
	}, owner.ID.String())
	require.NoError(t, err)

	recipes, err := svc.GetRecipes(ctx, owner.ID.String(), domain.RecipeFilter{
		TagIDs: []uint{curry.Tags[0].ID, salad.Tags[0].ID},
	})
	require.NoError(t, err)

	titles := make([]string, 0, len(recipes))
	for _, r := range recipes {
		titles = append(titles, r.Title)
	}
	assert.ElementsMatch(t, []string{"Curry", "Salad"}, titles)
}

func TestGetRecipesFiltersComposeWithAnd(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "test@example.com")
	ctx := context.Background()

	qty := 1
	both, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title: "Both", TimeMinutes: 30, Price: 5.00,
		Tags:        []domain.TagDescriptor{{Name: "spicy"}},
		Ingredients: []domain.IngredientDescriptor{{Name: "chili", Quantity: &qty}},
	}, owner.ID.String())
	require.NoError(t, err)

	_, err = svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title: "TagOnly", TimeMinutes: 10, Price: 3.00,
		Tags: []domain.TagDescriptor{{Name: "spicy"}},
	}, owner.ID.String())
	require.NoError(t, err)

	recipes, err := svc.GetRecipes(ctx, owner.ID.String(), domain.RecipeFilter{
		TagIDs:        []uint{both.Tags[0].ID},
		IngredientIDs: []uint{both.Ingredients[0].ID},
	})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Both", recipes[0].Title)
}

func TestGetRecipesDeduplicatesAcrossMatchingTags(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "test@example.com")
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title: "DoubleMatch", TimeMinutes: 30, Price: 5.00,
		Tags: []domain.TagDescriptor{{Name: "spicy"}, {Name: "dinner"}},
	}, owner.ID.String())
	require.NoError(t, err)

	recipes, err := svc.GetRecipes(ctx, owner.ID.String(), domain.RecipeFilter{
		TagIDs: []uint{created.Tags[0].ID, created.Tags[1].ID},
	})
	require.NoError(t, err)
	assert.Len(t, recipes, 1)
}

func TestGetRecipeDetailForeignOwnerIsNotFound(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "one@example.com")
	other := createUser(t, db, "two@example.com")
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{Title: "Private", TimeMinutes: 10, Price: 1.00}, owner.ID.String())
	require.NoError(t, err)

	_, err = svc.GetRecipeDetail(ctx, created.ID, other.ID.String())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestDeleteRecipeDetachesButKeepsTags(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "test@example.com")
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
		Title: "Doomed", TimeMinutes: 10, Price: 1.00,
		Tags: []domain.TagDescriptor{{Name: "keepme"}},
	}, owner.ID.String())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecipe(ctx, created.ID, owner.ID.String()))

	var recipeCount, tagCount int64
	require.NoError(t, db.Model(&entities.Recipe{}).Count(&recipeCount).Error)
	require.NoError(t, db.Model(&entities.Tag{}).Count(&tagCount).Error)
	assert.EqualValues(t, 0, recipeCount)
	assert.EqualValues(t, 1, tagCount)
}

func makeFileHeader(t *testing.T, contentType string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="test.jpg"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("not really image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["image"][0]
}

func TestUploadRecipeImage(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "test@example.com")
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{Title: "Pretty", TimeMinutes: 10, Price: 1.00}, owner.ID.String())
	require.NoError(t, err)

	res, err := svc.UploadRecipeImage(ctx, created.ID, makeFileHeader(t, "image/jpeg"), owner.ID.String())
	require.NoError(t, err)
	assert.Contains(t, res.Image, fmt.Sprintf("recipes/%d/", created.ID))
}

func TestUploadRecipeImageRejectsNonImage(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := createUser(t, db, "test@example.com")
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{Title: "Plain", TimeMinutes: 10, Price: 1.00}, owner.ID.String())
	require.NoError(t, err)

	_, err = svc.UploadRecipeImage(ctx, created.ID, makeFileHeader(t, "text/plain"), owner.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotAnImage)
}
