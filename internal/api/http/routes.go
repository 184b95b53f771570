package httpapi

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/neersanchay/internal/assessment"
	"github.com/i474232898/neersanchay/internal/estimate"
	"github.com/i474232898/neersanchay/internal/geolocation"
	"github.com/i474232898/neersanchay/internal/metrics"
	"github.com/i474232898/neersanchay/internal/navigation"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *assessment.Service, collector *metrics.Collector) {
	if collector != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(collector.Registry, promhttp.HandlerOpts{})))
	}

	v1 := app.Group("/api/v1")

	v1.Get("/view", func(c *fiber.Ctx) error {
		return c.JSON(newViewResponse(service, service.View()))
	})

	v1.Get("/form-options", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"roofMaterials": estimate.RoofMaterials,
			"soilTypes":     []string{estimate.SoilClay, estimate.SoilSandy, estimate.SoilLoamy},
			"screens":       navigation.Screens(),
		})
	})

	v1.Post("/navigate", func(c *fiber.Ctx) error {
		var req navigateRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		return c.JSON(newViewResponse(service, service.Navigate(req.Screen)))
	})

	auth := v1.Group("/auth")

	auth.Post("/signin", func(c *fiber.Ctx) error {
		var creds navigation.SignInCredentials
		if err := bindBody(c, &creds); err != nil {
			return err
		}
		view, err := service.SignIn(creds)
		if err != nil {
			return err
		}
		return c.JSON(newViewResponse(service, view))
	})

	auth.Post("/signup", func(c *fiber.Ctx) error {
		var creds navigation.SignUpCredentials
		if err := bindBody(c, &creds); err != nil {
			return err
		}
		view, err := service.SignUp(creds)
		if err != nil {
			return err
		}
		return c.JSON(newViewResponse(service, view))
	})

	auth.Post("/signout", func(c *fiber.Ctx) error {
		return c.JSON(newViewResponse(service, service.SignOut()))
	})

	v1.Post("/assessments", func(c *fiber.Ctx) error {
		var in estimate.Input
		if err := bindBody(c, &in); err != nil {
			return err
		}
		a, err := service.Submit(in)
		if err != nil {
			return err
		}
		return c.JSON(service.Report(a))
	})

	v1.Get("/assessments/current", func(c *fiber.Ctx) error {
		a, err := service.Current()
		if err != nil {
			return err
		}
		return c.JSON(service.Report(a))
	})

	v1.Post("/assessments/edit", func(c *fiber.Ctx) error {
		view, err := service.EditInputs()
		if err != nil {
			return err
		}
		return c.JSON(newViewResponse(service, view))
	})

	v1.Post("/estimate", func(c *fiber.Ctx) error {
		var in estimate.Input
		if err := bindBody(c, &in); err != nil {
			return err
		}
		rep, err := service.Estimate(in)
		if err != nil {
			return err
		}
		return c.JSON(rep)
	})

	v1.Post("/location/detect", func(c *fiber.Ctx) error {
		var req detectRequest
		if len(c.Body()) > 0 {
			if err := bindBody(c, &req); err != nil {
				return err
			}
		}
		pos, err := service.Locate(c.UserContext(), req.Hint)
		return locationResult(c, service, pos, err)
	})

	v1.Post("/location", func(c *fiber.Ctx) error {
		var report assessment.DeviceReport
		if err := bindBody(c, &report); err != nil {
			return err
		}
		pos, err := service.ReportDevice(report)
		return locationResult(c, service, pos, err)
	})
}

type navigateRequest struct {
	Screen string `json:"screen" validate:"required"`
}

type detectRequest struct {
	Hint string `json:"hint"`
}

type viewResponse struct {
	navigation.View
	Report *estimate.Report `json:"report,omitempty"`
}

func newViewResponse(service *assessment.Service, v navigation.View) viewResponse {
	resp := viewResponse{View: v}
	if v.Assessment != nil {
		rep := service.Report(*v.Assessment)
		resp.Report = &rep
	}
	return resp
}

type locationResponse struct {
	viewResponse
	Position *geolocation.Position `json:"position,omitempty"`
	Error    string                `json:"locationError,omitempty"`
}

// locationResult answers 200 for lookup failures; they only surface as a
// status message. Conflicts still go through the error handler.
func locationResult(c *fiber.Ctx, service *assessment.Service, pos geolocation.Position, err error) error {
	if errors.Is(err, navigation.ErrLocateInFlight) || errors.Is(err, assessment.ErrDiscarded) {
		return err
	}
	resp := locationResponse{viewResponse: newViewResponse(service, service.View())}
	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Position = &pos
	}
	return c.JSON(resp)
}

func bindBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	return nil
}

func bindAndValidate(c *fiber.Ctx, dst interface{}) error {
	if err := bindBody(c, dst); err != nil {
		return err
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field()))
			}
			return fiber.NewError(fiber.StatusBadRequest, "missing fields: "+strings.Join(fields, ", "))
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
