package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	httptestutil "github.com/aiod/metacat/internal/testutils/http"
	apicatalog "github.com/aiod/metacat/pkg/api/types/catalog"
	"github.com/aiod/metacat/pkg/domain"
	dbmock "github.com/aiod/metacat/pkg/domain/catalog/db/mock"
	kpgerr "github.com/aiod/metacat/pkg/domain/errors/dberrors/postgres"
	"github.com/aiod/metacat/pkg/utils/cmp"

	"github.com/aiod/metacat/cmd/metacatd/handlers"
)

func TestFindPublicationHandler(t *testing.T) {
	t.Run("When publications are received from the database, it should be converted to JSON format", func(t *testing.T) {
		mckdb := dbmock.NewPublicationInterface()
		mckdb.Impl.Find = func(ctx context.Context) ([]domain.Publication, error) {
			return []domain.Publication{
				{Id: 1, Title: "AMLB: an AutoML Benchmark", URL: "https://arxiv.org/abs/2207.12560"},
				{Id: 2, Title: "Searching for exotic particles in high-energy physics with deep learning", URL: "https://www.nature.com/articles/ncomms5308"},
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/publications/")

		testee := handlers.FindPublicationHandler(mckdb)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		expected := []apicatalog.Publication{
			{Id: 1, Title: "AMLB: an AutoML Benchmark", URL: "https://arxiv.org/abs/2207.12560"},
			{Id: 2, Title: "Searching for exotic particles in high-energy physics with deep learning", URL: "https://www.nature.com/articles/ncomms5308"},
		}
		actual := []apicatalog.Publication{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Errorf("response is not illegal. error = %v", err)
		}
		if !cmp.SliceEqWith(actual, expected, func(a, b apicatalog.Publication) bool { return a.Equal(&b) }) {
			t.Errorf(
				"publications do not match. (actual, expected) = \n(%+v, \n%+v)",
				actual, expected,
			)
		}
	})
}

func TestGetPublicationHandler(t *testing.T) {
	t.Run("When the publication exists, it responds the row with one-hop datasets", func(t *testing.T) {
		mckdb := dbmock.NewPublicationInterface()
		mckdb.Impl.Get = func(ctx context.Context, id int) (domain.Publication, error) {
			return domain.Publication{
				Id: 1, Title: "AMLB: an AutoML Benchmark", URL: "https://arxiv.org/abs/2207.12560",
			}, nil
		}
		mckdb.Impl.Datasets = func(ctx context.Context, id int) ([]domain.Dataset, error) {
			return []domain.Dataset{
				{Id: 3, Name: "Higgs", Platform: domain.OpenML, PlatformSpecificIdentifier: "42769"},
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/publications/1/")
		c.SetPath("/publications/:publicationId/")
		c.SetParamNames("publicationId")
		c.SetParamValues("1")

		testee := handlers.GetPublicationHandler(mckdb, "publicationId")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		expected := apicatalog.Publication{
			Id: 1, Title: "AMLB: an AutoML Benchmark", URL: "https://arxiv.org/abs/2207.12560",
			Datasets: []apicatalog.Dataset{
				{Id: 3, Name: "Higgs", Platform: "openml", PlatformSpecificIdentifier: "42769"},
			},
		}
		actual := apicatalog.Publication{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Errorf("response is not illegal. error = %v", err)
		}
		if !actual.Equal(&expected) {
			t.Errorf(
				"publication does not match. (actual, expected) = \n(%+v, \n%+v)",
				actual, expected,
			)
		}
	})

	t.Run("When the publication is missing, it responds 404", func(t *testing.T) {
		mckdb := dbmock.NewPublicationInterface()
		mckdb.Impl.Get = func(ctx context.Context, id int) (domain.Publication, error) {
			return domain.Publication{}, kpgerr.Missing{Table: "publications", Identity: "id 42"}
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/publications/42/")
		c.SetPath("/publications/:publicationId/")
		c.SetParamNames("publicationId")
		c.SetParamValues("42")

		testee := handlers.GetPublicationHandler(mckdb, "publicationId")
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unexpected status code: %d (expected 404)", echoErr.Code)
		}
	})
}

func TestRegisterPublicationHandler(t *testing.T) {
	t.Run("When the spec is valid, it registers and responds the stored row", func(t *testing.T) {
		mckdb := dbmock.NewPublicationInterface()
		mckdb.Impl.Register = func(ctx context.Context, publication domain.Publication) (domain.Publication, error) {
			publication.Id = 5
			return publication, nil
		}

		e := echo.New()
		body := bytes.NewBufferString(`{
			"title": "AMLB: an AutoML Benchmark",
			"url": "https://arxiv.org/abs/2207.12560"
		}`)
		c, respRec := httptestutil.Post(
			e, "/api/publications/", body,
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.RegisterPublicationHandler(mckdb)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		expectedCall := domain.Publication{
			Title: "AMLB: an AutoML Benchmark", URL: "https://arxiv.org/abs/2207.12560",
		}
		if mckdb.Calls.Register.Times() != 1 ||
			!mckdb.Calls.Register[0].Publication.Equal(&expectedCall) {
			t.Errorf("PublicationInterface.Register did not call with the spec: %+v", mckdb.Calls.Register)
		}

		actual := apicatalog.Publication{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Errorf("response is not illegal. error = %v", err)
		}
		if actual.Id != 5 {
			t.Errorf("unexpected response: %+v", actual)
		}
	})

	t.Run("When the (title, url) pair is taken, it responds 409", func(t *testing.T) {
		mckdb := dbmock.NewPublicationInterface()
		mckdb.Impl.Register = func(ctx context.Context, publication domain.Publication) (domain.Publication, error) {
			return domain.Publication{}, kpgerr.Conflict{
				Table:      "publications",
				Identity:   "'AMLB: an AutoML Benchmark' (https://arxiv.org/abs/2207.12560)",
				ExistingId: 1,
			}
		}

		e := echo.New()
		body := bytes.NewBufferString(`{
			"title": "AMLB: an AutoML Benchmark",
			"url": "https://arxiv.org/abs/2207.12560"
		}`)
		c, _ := httptestutil.Post(
			e, "/api/publications/", body,
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.RegisterPublicationHandler(mckdb)
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusConflict {
			t.Errorf("unexpected status code: %d (expected 409)", echoErr.Code)
		}
	})

	t.Run("When a required field is missing, it responds 400", func(t *testing.T) {
		mckdb := dbmock.NewPublicationInterface()

		e := echo.New()
		body := bytes.NewBufferString(`{"title": "no url"}`)
		c, _ := httptestutil.Post(
			e, "/api/publications/", body,
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.RegisterPublicationHandler(mckdb)
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusBadRequest {
			t.Errorf("unexpected status code: %d (expected 400)", echoErr.Code)
		}
		if mckdb.Calls.Register.Times() != 0 {
			t.Error("PublicationInterface.Register should not be called")
		}
	})
}

func TestDeletePublicationHandler(t *testing.T) {
	t.Run("When the publication exists, it deletes and responds 204", func(t *testing.T) {
		mckdb := dbmock.NewPublicationInterface()
		mckdb.Impl.Delete = func(ctx context.Context, id int) error {
			return nil
		}

		e := echo.New()
		c, respRec := httptestutil.Delete(e, "/api/publications/1/")
		c.SetPath("/publications/:publicationId/")
		c.SetParamNames("publicationId")
		c.SetParamValues("1")

		testee := handlers.DeletePublicationHandler(mckdb, "publicationId")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if respRec.Code != http.StatusNoContent {
			t.Errorf("unexpected status code: %d (expected 204)", respRec.Code)
		}
	})

	t.Run("When the publication is missing, it responds 404", func(t *testing.T) {
		mckdb := dbmock.NewPublicationInterface()
		mckdb.Impl.Delete = func(ctx context.Context, id int) error {
			return kpgerr.Missing{Table: "publications", Identity: "id 42"}
		}

		e := echo.New()
		c, _ := httptestutil.Delete(e, "/api/publications/42/")
		c.SetPath("/publications/:publicationId/")
		c.SetParamNames("publicationId")
		c.SetParamValues("42")

		testee := handlers.DeletePublicationHandler(mckdb, "publicationId")
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unexpected status code: %d (expected 404)", echoErr.Code)
		}
	})
}
