package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/helios-signage/helios/internal/db"
	"github.com/helios-signage/helios/internal/http/api"
	"github.com/helios-signage/helios/internal/http/api/admin/packets"
	"github.com/helios-signage/helios/internal/model"
	"github.com/helios-signage/helios/internal/playback"
	"github.com/helios-signage/helios/internal/storage"
)

type SlideshowController struct {
	store   db.Store
	storage storage.Storage
}

func NewSlideshowController(store db.Store, storageSystem storage.Storage) *SlideshowController {
	return &SlideshowController{store: store, storage: storageSystem}
}

func SlideshowModule(store db.Store, storageSystem storage.Storage) api.Module {
	ctl := NewSlideshowController(store, storageSystem)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/slideshows", ctl.listSlideshows)
		c.POST("/slideshows", ctl.createSlideshow)
		c.GET("/slideshows/:id", ctl.getSlideshow)
		c.PUT("/slideshows/:id", ctl.updateSlideshow)
		c.DELETE("/slideshows/:id", ctl.deleteSlideshow)

		// slides
		c.POST("/slideshows/:id/slides", ctl.createSlide)
		c.PUT("/slideshows/:id/slides/order", ctl.reorderSlides)
		c.PUT("/slides/:slide_id", ctl.updateSlide)
		c.DELETE("/slides/:slide_id", ctl.deleteSlide)

		// media attachments
		c.POST("/slides/:slide_id/media", ctl.uploadMedia)
		c.DELETE("/media/:media_id", ctl.deleteMedia)
	})
}

func (s *SlideshowController) ownedSlideshow(ctx *gin.Context, user *model.User, param string) (model.Slideshow, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param(param))
	if err != nil {
		return model.Slideshow{}, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	show, err := s.store.GetSlideshowByID(id)
	if err != nil {
		return model.Slideshow{}, &api.APIError{Code: http.StatusNotFound, Message: "slideshow not found"}
	}
	if show.CreatedBy != user.ID {
		return model.Slideshow{}, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return show, nil
}

func (s *SlideshowController) listSlideshows(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := s.store.ListSlideshows()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list slideshows"}
	}

	response := make([]packets.SlideshowResponse, 0, len(all))
	for i := range all {
		if all[i].CreatedBy != user.ID {
			continue
		}
		response = append(response, packets.NewSlideshowResponse(all[i], playback.SlideshowDuration(&all[i])))
	}
	return response, nil
}

func (s *SlideshowController) createSlideshow(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateSlideshowRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	show, err := s.store.CreateSlideshow(request.Name, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create slideshow"}
	}
	return packets.NewSlideshowResponse(show, 0), nil
}

func (s *SlideshowController) getSlideshow(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	show, apiErr := s.ownedSlideshow(ctx, user, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.NewSlideshowResponse(show, playback.SlideshowDuration(&show)), nil
}

func (s *SlideshowController) updateSlideshow(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	show, apiErr := s.ownedSlideshow(ctx, user, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateSlideshowRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := s.store.UpdateSlideshow(show.ID, request.Name); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update slideshow"}
	}
	return gin.H{"message": "updated"}, nil
}

func (s *SlideshowController) deleteSlideshow(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	show, apiErr := s.ownedSlideshow(ctx, user, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	if err := s.store.DeleteSlideshow(show.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete slideshow"}
	}
	return gin.H{"message": "deleted"}, nil
}

func (s *SlideshowController) createSlide(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	show, apiErr := s.ownedSlideshow(ctx, user, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.CreateSlideRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	slide, err := s.store.CreateSlide(show.ID, request.Position, request.Duration, request.Payload)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create slide"}
	}
	return slide, nil
}

func (s *SlideshowController) ownedSlide(ctx *gin.Context, user *model.User) (model.Slide, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("slide_id"))
	if err != nil {
		return model.Slide{}, &api.APIError{Code: http.StatusBadRequest, Message: "invalid slide id"}
	}
	slide, err := s.store.GetSlideByID(id)
	if err != nil {
		return model.Slide{}, &api.APIError{Code: http.StatusNotFound, Message: "slide not found"}
	}
	show, err := s.store.GetSlideshowByID(slide.SlideshowID)
	if err != nil || show.CreatedBy != user.ID {
		return model.Slide{}, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return slide, nil
}

func (s *SlideshowController) updateSlide(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	slide, apiErr := s.ownedSlide(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateSlideRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if request.Duration != nil && *request.Duration <= 0 {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "duration must be positive"}
	}

	if err := s.store.UpdateSlide(slide.ID, request.Position, request.Duration, request.Payload); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update slide"}
	}
	return gin.H{"message": "updated"}, nil
}

func (s *SlideshowController) deleteSlide(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	slide, apiErr := s.ownedSlide(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := s.store.DeleteSlide(slide.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete slide"}
	}
	return gin.H{"message": "deleted"}, nil
}

func (s *SlideshowController) reorderSlides(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	show, apiErr := s.ownedSlideshow(ctx, user, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.ReorderSlidesRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := s.store.ReorderSlides(show.ID, request.SlideIDs); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not reorder slides"}
	}
	return gin.H{"message": "reordered"}, nil
}

func (s *SlideshowController) uploadMedia(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	slide, apiErr := s.ownedSlide(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "missing file"}
	}
	mediaType := ctx.PostForm("type")
	if mediaType == "" {
		mediaType = "image"
	}

	url, err := s.storage.SaveFile(fileHeader, fileHeader.Filename)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not store file"}
	}

	media, err := s.store.CreateMedia(slide.ID, fileHeader.Filename, mediaType, url)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save media"}
	}
	return media, nil
}

func (s *SlideshowController) deleteMedia(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("media_id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid media id"}
	}
	if err := s.store.DeleteMedia(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete media"}
	}
	return gin.H{"message": "deleted"}, nil
}
