package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"dragon_gold", "Dragon Gold"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func writeSceneFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestParseSceneMetadata(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete_metadata.yaml",
			content: `# Scene: Cornell Box
# Variant: Empty Room
# Description: Classic Cornell box with no objects
# Group: Cornell Variants
shading: path
`,
			expected: SceneInfo{
				ID:          "file:complete_metadata",
				Name:        "Cornell Box",
				DisplayName: "Cornell Box - Empty Room",
				Description: "Classic Cornell box with no objects",
				Group:       "Cornell Variants",
				Type:        "yaml",
				Variant:     "Empty Room",
			},
		},
		{
			name: "partial_metadata.yaml",
			content: `# Scene: Planets
# Description: Two planets
sky: space
# Group: ignored after the header
`,
			expected: SceneInfo{
				ID:          "file:partial_metadata",
				Name:        "Planets",
				DisplayName: "Planets",
				Description: "Two planets",
				Group:       fileGroup,
				Type:        "yaml",
			},
		},
		{
			name:    "no_metadata.yml",
			content: "shading: normal\n",
			expected: SceneInfo{
				ID:          "file:no_metadata",
				Name:        "No Metadata",
				DisplayName: "No Metadata",
				Group:       fileGroup,
				Type:        "yaml",
			},
		},
		{
			name: "malformed_comments.yaml",
			content: `#Scene: Missing space
#Variant:
# Group:
# just a note
`,
			expected: SceneInfo{
				ID:          "file:malformed_comments",
				Name:        "Missing space",
				DisplayName: "Missing space",
				Group:       fileGroup,
				Type:        "yaml",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSceneFile(t, dir, tc.name, tc.content)

			result, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata() error: %v", err)
			}

			tc.expected.FilePath = path
			if diff := cmp.Diff(tc.expected, result); diff != "" {
				t.Errorf("metadata mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSceneMetadata_MissingFile(t *testing.T) {
	info, err := ParseSceneMetadata("nonexistent.yaml")
	if err != nil {
		t.Errorf("ParseSceneMetadata() should handle missing files gracefully, got %v", err)
	}
	if info.Name != "Nonexistent" {
		t.Errorf("Expected fallback name, got %q", info.Name)
	}
}

func TestListSceneFiles(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "nope"))
		if err != nil {
			t.Errorf("ListSceneFiles() error: %v", err)
		}
		if scenes == nil || len(scenes) != 0 {
			t.Errorf("Expected an empty slice, got %v", scenes)
		}
	})

	t.Run("sorted yaml files only", func(t *testing.T) {
		dir := t.TempDir()
		writeSceneFile(t, dir, "b.yaml", "# Scene: Zebra\n")
		writeSceneFile(t, dir, "a.yml", "# Scene: Aardvark\n")
		writeSceneFile(t, dir, "notes.txt", "# Scene: Ignored\n")

		scenes, err := ListSceneFiles(dir)
		if err != nil {
			t.Fatalf("ListSceneFiles() error: %v", err)
		}
		var names []string
		for _, s := range scenes {
			names = append(names, s.DisplayName)
		}
		if diff := cmp.Diff([]string{"Aardvark", "Zebra"}, names); diff != "" {
			t.Errorf("scene list mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "room.yaml", "# Scene: Room\n# Group: Interiors\n")
	writeSceneFile(t, dir, "misc.yaml", "# Scene: Misc\n")

	groups, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	var groupNames []string
	for _, g := range groups {
		groupNames = append(groupNames, g.Name)
	}
	if diff := cmp.Diff([]string{builtinGroup, "Interiors", fileGroup}, groupNames); diff != "" {
		t.Errorf("group order mismatch (-want +got):\n%s", diff)
	}

	ids := make(map[string]bool)
	for _, info := range groups[0].Scenes {
		ids[info.ID] = true
		if info.Type != "builtin" {
			t.Errorf("Built-in group holds %s scene %s", info.Type, info.ID)
		}
	}
	for _, id := range []string{"default", "cornell", "space", "normals", "sphere-grid", "triangle-mesh"} {
		if !ids[id] {
			t.Errorf("Missing expected built-in scene: %s", id)
		}
	}
}
