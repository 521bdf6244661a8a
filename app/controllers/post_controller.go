package controllers

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"yatube/app/forms"
	"yatube/app/models"
	"yatube/internal/pkg/imageprocessor"
	"yatube/internal/pkg/pagecache"
	"yatube/internal/pkg/pagination"
	"yatube/internal/pkg/upload"
	"yatube/internal/pkg/usercontext"
	"yatube/internal/pkg/viewmodel"
)

func postURL(id uint) string {
	return fmt.Sprintf("/posts/%d", id)
}

func profileURL(username string) string {
	return "/profile/" + username
}

// HandlePostIndex renders the newest-first page of all posts. The list
// fragment is cached for pagecache.TTL keyed by page number only, so every
// viewer shares one entry; the surrounding layout stays per-request.
func HandlePostIndex(c *fiber.Ctx) error {
	pageNum := pagination.ParsePage(c.Query("page"))
	key := pagecache.IndexKey(pageNum)

	fragment, ok := pagecache.Get(key)
	if !ok {
		total, err := repos.Post.Count()
		if err != nil {
			return err
		}
		pager := pagination.Paginate(total, pageNum)
		posts, err := repos.Post.List(pager.Offset, pager.Size)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		views := c.App().Config().Views
		if views == nil {
			return fiber.ErrInternalServerError
		}
		if err := views.Render(&buf, "posts/post_list", viewmodel.PostList{Posts: posts, Pager: pager}); err != nil {
			return err
		}
		fragment = buf.Bytes()
		pagecache.Set(key, fragment)
	}

	return c.Render("posts/index", viewmodel.PostIndex{
		Layout:   layout(c, "Latest posts"),
		Fragment: template.HTML(fragment),
	}, "layouts/main")
}

// HandleGroupPosts renders the posts of one group; unknown slugs are a 404
func HandleGroupPosts(c *fiber.Ctx) error {
	group, err := repos.Group.GetBySlug(c.Params("slug"))
	if err != nil {
		if isNotFound(err) {
			return renderNotFound(c)
		}
		return err
	}

	total, err := repos.Post.CountByGroup(group.ID)
	if err != nil {
		return err
	}
	pager := pagination.Paginate(total, pagination.ParsePage(c.Query("page")))
	posts, err := repos.Post.ListByGroup(group.ID, pager.Offset, pager.Size)
	if err != nil {
		return err
	}

	return c.Render("posts/group_list", viewmodel.PostList{
		Layout: layout(c, group.Title),
		Posts:  posts,
		Pager:  pager,
		Group:  group,
	}, "layouts/main")
}

// HandleProfile renders one author's posts and whether the current viewer
// already follows them (always false for anonymous viewers and the author
// themself).
func HandleProfile(c *fiber.Ctx) error {
	author, err := repos.User.GetByUsername(c.Params("username"))
	if err != nil {
		if isNotFound(err) {
			return renderNotFound(c)
		}
		return err
	}

	total, err := repos.Post.CountByAuthor(author.ID)
	if err != nil {
		return err
	}
	pager := pagination.Paginate(total, pagination.ParsePage(c.Query("page")))
	posts, err := repos.Post.ListByAuthor(author.ID, pager.Offset, pager.Size)
	if err != nil {
		return err
	}

	uc := usercontext.GetUserContext(c)
	following := false
	if uc.IsLoggedIn && uc.UserID != author.ID {
		following, err = repos.Follow.IsFollowing(uc.UserID, author.ID)
		if err != nil {
			return err
		}
	}

	return c.Render("posts/profile", viewmodel.PostList{
		Layout:    layout(c, "Posts by "+author.Username),
		Posts:     posts,
		Pager:     pager,
		Author:    author,
		PostCount: total,
		Following: following,
	}, "layouts/main")
}

// HandlePostDetail renders a single post with its comments newest-first
func HandlePostDetail(c *fiber.Ctx) error {
	post, ok, err := findPost(c)
	if err != nil {
		return err
	}
	if !ok {
		return renderNotFound(c)
	}

	comments, err := repos.Comment.ListByPost(post.ID)
	if err != nil {
		return err
	}
	authorPosts, err := repos.Post.CountByAuthor(post.AuthorID)
	if err != nil {
		return err
	}

	return c.Render("posts/post_detail", viewmodel.PostDetail{
		Layout:          layout(c, post.Preview(30)),
		Post:            *post,
		Comments:        comments,
		AuthorPostCount: authorPosts,
	}, "layouts/main")
}

// HandlePostCreate shows the post form and persists valid submissions.
// Invalid submissions redisplay the form with field errors and the
// submitted values intact.
func HandlePostCreate(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	if c.Method() != fiber.MethodPost {
		return renderPostForm(c, viewmodel.PostForm{})
	}

	form := forms.BindPostForm(c)
	errs := form.Validate(repos.Group)

	saved, imgErr := savePostImage(c)
	if imgErr != nil {
		if errs == nil {
			errs = forms.FieldErrors{}
		}
		errs["image"] = imgErr.Error()
	}

	if !errs.Empty() {
		return renderPostForm(c, viewmodel.PostForm{
			Text:       form.Text,
			GroupValue: form.GroupValue(),
			Errors:     errs,
		})
	}

	post := &models.Post{
		Text:     form.Text,
		AuthorID: uc.UserID,
		GroupID:  form.GroupID,
	}
	if saved != nil {
		post.ImagePath = saved.ImagePath
		post.ThumbnailPath = saved.ThumbnailPath
	}
	if err := repos.Post.Create(post); err != nil {
		return err
	}

	fm := fiber.Map{"type": "success", "message": "Post published"}
	return flash.WithSuccess(c, fm).Redirect(profileURL(uc.Username), fiber.StatusSeeOther)
}

// HandlePostEdit lets the author change a post's text, group and image.
// Non-authors are silently redirected to the post detail view; this is an
// authorization short-circuit, not an error.
func HandlePostEdit(c *fiber.Ctx) error {
	post, ok, err := findPost(c)
	if err != nil {
		return err
	}
	if !ok {
		return renderNotFound(c)
	}

	uc := usercontext.GetUserContext(c)
	if post.AuthorID != uc.UserID {
		return c.Redirect(postURL(post.ID), fiber.StatusSeeOther)
	}

	if c.Method() != fiber.MethodPost {
		groupValue := ""
		if post.GroupID != nil {
			groupValue = strconv.FormatUint(uint64(*post.GroupID), 10)
		}
		return renderPostForm(c, viewmodel.PostForm{
			IsEdit:     true,
			PostID:     post.ID,
			Text:       post.Text,
			GroupValue: groupValue,
		})
	}

	form := forms.BindPostForm(c)
	errs := form.Validate(repos.Group)

	saved, imgErr := savePostImage(c)
	if imgErr != nil {
		if errs == nil {
			errs = forms.FieldErrors{}
		}
		errs["image"] = imgErr.Error()
	}

	if !errs.Empty() {
		return renderPostForm(c, viewmodel.PostForm{
			IsEdit:     true,
			PostID:     post.ID,
			Text:       form.Text,
			GroupValue: form.GroupValue(),
			Errors:     errs,
		})
	}

	post.Text = form.Text
	post.GroupID = form.GroupID
	if saved != nil {
		imageprocessor.DeletePostImage(imageprocessor.SavedImage{
			ImagePath:     post.ImagePath,
			ThumbnailPath: post.ThumbnailPath,
		}, uploadsDir)
		post.ImagePath = saved.ImagePath
		post.ThumbnailPath = saved.ThumbnailPath
	}
	if err := repos.Post.Update(post); err != nil {
		return err
	}

	fm := fiber.Map{"type": "success", "message": "Post updated"}
	return flash.WithSuccess(c, fm).Redirect(postURL(post.ID), fiber.StatusSeeOther)
}

// HandlePostDelete removes the author's post together with its comments
func HandlePostDelete(c *fiber.Ctx) error {
	post, ok, err := findPost(c)
	if err != nil {
		return err
	}
	if !ok {
		return renderNotFound(c)
	}

	uc := usercontext.GetUserContext(c)
	if post.AuthorID != uc.UserID {
		return c.Redirect(postURL(post.ID), fiber.StatusSeeOther)
	}

	if err := repos.Post.Delete(post.ID); err != nil {
		return err
	}
	imageprocessor.DeletePostImage(imageprocessor.SavedImage{
		ImagePath:     post.ImagePath,
		ThumbnailPath: post.ThumbnailPath,
	}, uploadsDir)

	fm := fiber.Map{"type": "success", "message": "Post deleted"}
	return flash.WithSuccess(c, fm).Redirect(profileURL(uc.Username), fiber.StatusSeeOther)
}

// findPost resolves the :id path parameter. ok=false means not found.
func findPost(c *fiber.Ctx) (*models.Post, bool, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, false, nil
	}
	post, err := repos.Post.GetByID(uint(id))
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return post, true, nil
}

func renderPostForm(c *fiber.Ctx, vm viewmodel.PostForm) error {
	groups, err := repos.Group.GetAll()
	if err != nil {
		return err
	}
	vm.Groups = groups
	title := "New post"
	if vm.IsEdit {
		title = "Edit post"
	}
	vm.Layout = layout(c, title)
	return c.Render("posts/create_post", vm, "layouts/main")
}

// savePostImage validates and stores an optional uploaded illustration.
// A missing file is not an error; a present but invalid file is.
func savePostImage(c *fiber.Ctx) (*imageprocessor.SavedImage, error) {
	fh, err := c.FormFile("image")
	if err != nil || fh == nil {
		return nil, nil
	}

	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := sniffImage(file, fh); err != nil {
		return nil, err
	}

	return imageprocessor.SavePostImage(file, fh.Filename, uploadsDir)
}

func sniffImage(file multipart.File, fh *multipart.FileHeader) error {
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	_, err = upload.ValidateImageBySniff(fh.Filename, head[:n])
	return err
}
