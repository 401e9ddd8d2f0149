package content

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foligo-api/internal/domain/entity"
)

// fakeSkillRepo 内存技能仓储，键为 lower(name)|category
type fakeSkillRepo struct {
	skills       map[string]*entity.Skill
	creates      int
	projectLinks map[string]int
	contentLinks map[string]int
	failOn       string
}

func newFakeSkillRepo() *fakeSkillRepo {
	return &fakeSkillRepo{
		skills:       map[string]*entity.Skill{},
		projectLinks: map[string]int{},
		contentLinks: map[string]int{},
	}
}

func skillKey(name string, category *string) string {
	c := ""
	if category != nil {
		c = *category
	}
	return strings.ToLower(name) + "|" + c
}

func (f *fakeSkillRepo) Create(_ context.Context, skill *entity.Skill) (*entity.Skill, error) {
	if strings.EqualFold(skill.Name, f.failOn) {
		return nil, fmt.Errorf("create failed")
	}
	f.creates++
	key := skillKey(skill.Name, skill.Category)
	if existing, ok := f.skills[key]; ok {
		return existing, nil
	}
	skill.ID = uuid.NewString()
	f.skills[key] = skill
	return skill, nil
}

func (f *fakeSkillRepo) GetByID(_ context.Context, id string) (*entity.Skill, error) {
	for _, s := range f.skills {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSkillRepo) FindByNameAndCategory(_ context.Context, name string, category *string) (*entity.Skill, error) {
	return f.skills[skillKey(name, category)], nil
}

func (f *fakeSkillRepo) ListByProject(_ context.Context, _ string) ([]*entity.Skill, error) {
	return nil, nil
}

func (f *fakeSkillRepo) LinkProject(_ context.Context, skillID, projectID string) error {
	f.projectLinks[skillID+"|"+projectID]++
	return nil
}

func (f *fakeSkillRepo) LinkContent(_ context.Context, skillID, contentID string) error {
	f.contentLinks[skillID+"|"+contentID]++
	return nil
}

func (f *fakeSkillRepo) UnlinkProject(_ context.Context, _, _ string) error { return nil }

// fakeTagRepo 内存标签仓储
type fakeTagRepo struct {
	tags         map[string]*entity.ContentTag
	creates      int
	contentLinks map[string]int
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: map[string]*entity.ContentTag{}, contentLinks: map[string]int{}}
}

func (f *fakeTagRepo) Create(_ context.Context, tag *entity.ContentTag) (*entity.ContentTag, error) {
	f.creates++
	key := skillKey(tag.Name, tag.Category)
	if existing, ok := f.tags[key]; ok {
		return existing, nil
	}
	tag.ID = uuid.NewString()
	f.tags[key] = tag
	return tag, nil
}

func (f *fakeTagRepo) GetByID(_ context.Context, _ string) (*entity.ContentTag, error) {
	return nil, nil
}

func (f *fakeTagRepo) FindByNameAndCategory(_ context.Context, name string, category *string) (*entity.ContentTag, error) {
	return f.tags[skillKey(name, category)], nil
}

func (f *fakeTagRepo) ListByContent(_ context.Context, _ string) ([]*entity.ContentTag, error) {
	return nil, nil
}

func (f *fakeTagRepo) ListCategoriesByProject(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (f *fakeTagRepo) LinkContent(_ context.Context, tagID, contentID string) error {
	f.contentLinks[tagID+"|"+contentID]++
	return nil
}

func (f *fakeTagRepo) UnlinkContent(_ context.Context, _, _ string) error { return nil }

func strPtr(s string) *string { return &s }

func TestResolveSkills(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing skills and links both sides", func(t *testing.T) {
		skillRepo := newFakeSkillRepo()
		r := NewEntityResolver(skillRepo, newFakeTagRepo())

		resolved := r.ResolveSkills(ctx, []entity.NameCategory{
			{Name: "Go", Category: strPtr("language")},
			{Name: "PostgreSQL"},
		}, "proj-1", "content-1")

		require.Len(t, resolved, 2)
		assert.Equal(t, 2, skillRepo.creates)
		for _, s := range resolved {
			assert.Equal(t, 1, skillRepo.projectLinks[s.ID+"|proj-1"])
			assert.Equal(t, 1, skillRepo.contentLinks[s.ID+"|content-1"])
		}
	})

	t.Run("second resolve reuses existing row", func(t *testing.T) {
		skillRepo := newFakeSkillRepo()
		r := NewEntityResolver(skillRepo, newFakeTagRepo())

		first := r.ResolveSkills(ctx, []entity.NameCategory{{Name: "Go"}}, "proj-1", "c1")
		second := r.ResolveSkills(ctx, []entity.NameCategory{{Name: "go"}}, "proj-1", "c2")

		require.Len(t, first, 1)
		require.Len(t, second, 1)
		assert.Equal(t, first[0].ID, second[0].ID)
		assert.Equal(t, 1, skillRepo.creates)
	})

	t.Run("blank names are skipped", func(t *testing.T) {
		skillRepo := newFakeSkillRepo()
		r := NewEntityResolver(skillRepo, newFakeTagRepo())

		resolved := r.ResolveSkills(ctx, []entity.NameCategory{
			{Name: "   "},
			{Name: ""},
			{Name: "Rust"},
		}, "proj-1", "")

		require.Len(t, resolved, 1)
		assert.Equal(t, "Rust", resolved[0].Name)
		assert.Equal(t, 1, skillRepo.creates)
	})

	t.Run("one failure does not stop the batch", func(t *testing.T) {
		skillRepo := newFakeSkillRepo()
		skillRepo.failOn = "Bad"
		r := NewEntityResolver(skillRepo, newFakeTagRepo())

		resolved := r.ResolveSkills(ctx, []entity.NameCategory{
			{Name: "Bad"},
			{Name: "Good"},
		}, "proj-1", "")

		require.Len(t, resolved, 1)
		assert.Equal(t, "Good", resolved[0].Name)
	})

	t.Run("empty ids skip linking", func(t *testing.T) {
		skillRepo := newFakeSkillRepo()
		r := NewEntityResolver(skillRepo, newFakeTagRepo())

		r.ResolveSkills(ctx, []entity.NameCategory{{Name: "Go"}}, "", "")

		assert.Empty(t, skillRepo.projectLinks)
		assert.Empty(t, skillRepo.contentLinks)
	})
}

func TestResolveTags(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and links tags to content", func(t *testing.T) {
		tagRepo := newFakeTagRepo()
		r := NewEntityResolver(newFakeSkillRepo(), tagRepo)

		resolved := r.ResolveTags(ctx, []entity.NameCategory{
			{Name: "ai"},
			{Name: "productivity", Category: strPtr("theme")},
		}, "content-1")

		require.Len(t, resolved, 2)
		assert.Equal(t, 2, tagRepo.creates)
		for _, tag := range resolved {
			assert.Equal(t, 1, tagRepo.contentLinks[tag.ID+"|content-1"])
		}
	})

	t.Run("whitespace-only category treated as uncategorized", func(t *testing.T) {
		tagRepo := newFakeTagRepo()
		r := NewEntityResolver(newFakeSkillRepo(), tagRepo)

		first := r.ResolveTags(ctx, []entity.NameCategory{{Name: "ai", Category: strPtr("  ")}}, "c1")
		second := r.ResolveTags(ctx, []entity.NameCategory{{Name: "ai"}}, "c2")

		require.Len(t, first, 1)
		require.Len(t, second, 1)
		assert.Equal(t, first[0].ID, second[0].ID)
		assert.Equal(t, 1, tagRepo.creates)
	})
}
