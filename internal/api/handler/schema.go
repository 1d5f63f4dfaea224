package handler

// loginRequest carries the login form fields.
type loginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// signupForm carries the self-service registration fields. The same struct
// is handed back to the template on validation failure so the user keeps
// what they typed.
type signupForm struct {
	Username        string `form:"username"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
	FirstName       string `form:"first_name"`
	LastName        string `form:"last_name"`
	City            string `form:"city"`
	State           string `form:"state"`
	Country         string `form:"country"`
	FavoriteTopics  string `form:"favorite_topics"`
	FavoriteSources string `form:"favorite_sources"`
	FavoriteAuthors string `form:"favorite_authors"`
}

// userForm is the admin console's create/edit form. It adds the admin flag
// on top of the signup fields.
type userForm struct {
	Username        string `form:"username"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
	IsAdmin         bool   `form:"is_admin"`
	FirstName       string `form:"first_name"`
	LastName        string `form:"last_name"`
	City            string `form:"city"`
	State           string `form:"state"`
	Country         string `form:"country"`
	FavoriteTopics  string `form:"favorite_topics"`
	FavoriteSources string `form:"favorite_sources"`
	FavoriteAuthors string `form:"favorite_authors"`
}

// profileForm carries the self-service preference fields.
type profileForm struct {
	FirstName       string `form:"first_name"`
	LastName        string `form:"last_name"`
	City            string `form:"city"`
	State           string `form:"state"`
	Country         string `form:"country"`
	FavoriteTopics  string `form:"favorite_topics"`
	FavoriteSources string `form:"favorite_sources"`
	FavoriteAuthors string `form:"favorite_authors"`
}

// saveArticleRequest is the JSON body of the save-article endpoint.
type saveArticleRequest struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
}

// unsaveArticleRequest is the JSON body of the unsave-article endpoint.
type unsaveArticleRequest struct {
	URL string `json:"url" validate:"required"`
}

// articleResponse is the envelope returned by the article JSON endpoints.
type articleResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
