package recipes

// Recipe is a stored recipe. Recipes have no id: they are addressed by
// their position in the collection, which only ever grows.
type Recipe struct {
	AddedBy int64  `json:"added_by"`
	Title   string `json:"title"`
	Text    string `json:"text"`
}

// DisplayTitle returns the explicit title or one inferred from the body.
func (r Recipe) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return DeriveTitle(r.Text)
}

// Comment is user feedback. RecipeIdx is nil for a general comment.
type Comment struct {
	User      string `json:"user"`
	UserID    int64  `json:"user_id"`
	Text      string `json:"text"`
	RecipeIdx *int   `json:"recipe_idx"`
}

// CommentsFor returns the comments attached to the recipe at idx, in order.
func CommentsFor(comments []Comment, idx int) []Comment {
	var out []Comment
	for _, c := range comments {
		if c.RecipeIdx != nil && *c.RecipeIdx == idx {
			out = append(out, c)
		}
	}
	return out
}

// Store persists recipes and comments.
type Store interface {
	ListRecipes() ([]Recipe, error)
	AppendRecipe(r Recipe) error
	ListComments() ([]Comment, error)
	AppendComment(c Comment) error
}
