package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	wfmodel "foligo-api/internal/workflow/model"
)

func TestReclassify(t *testing.T) {
	t.Run("employment evidence beats project verbs", func(t *testing.T) {
		// 同时出现受雇信号和构建动词时必须判为经历
		text := "I worked at Acme Corp where my responsibilities included building the billing system"
		got := Reclassify(text)
		assert.Equal(t, wfmodel.KindExperience, got)
		assert.NotEqual(t, wfmodel.KindProject, got)
	})

	t.Run("build verbs classify as project", func(t *testing.T) {
		got := Reclassify("I built TaskFlow, a React and Node app. Code is at github.com/x/taskflow")
		assert.Equal(t, wfmodel.KindProject, got)
	})

	t.Run("repo host alone classifies as project", func(t *testing.T) {
		got := Reclassify("the source is on gitlab.com/team/thing")
		assert.Equal(t, wfmodel.KindProject, got)
	})

	t.Run("education keywords classify as experience", func(t *testing.T) {
		got := Reclassify("I graduated from university with a computer science degree")
		assert.Equal(t, wfmodel.KindExperience, got)
	})

	t.Run("proficiency wording classifies as skill", func(t *testing.T) {
		got := Reclassify("I'm proficient in distributed systems design")
		assert.Equal(t, wfmodel.KindSkill, got)
	})

	t.Run("no signal defaults to blog", func(t *testing.T) {
		got := Reclassify("some thoughts on how teams communicate")
		assert.Equal(t, wfmodel.KindBlog, got)
	})

	t.Run("matching is case insensitive", func(t *testing.T) {
		got := Reclassify("We BUILT something during the HACKATHON")
		assert.Equal(t, wfmodel.KindProject, got)
	})
}
