package mock

import (
	"context"
	"errors"

	"github.com/aiod/metacat/pkg/domain"
	kdb "github.com/aiod/metacat/pkg/domain/catalog/db"
)

type CallLog[T any] []T

func (l CallLog[T]) Times() uint {
	return uint(len(l))
}

type DatasetInterface struct {
	Impl struct {
		Get             func(context.Context, int) (domain.Dataset, error)
		GetByIdentifier func(context.Context, domain.Platform, string) (domain.Dataset, error)
		Find            func(context.Context, []domain.Platform) ([]domain.Dataset, error)
		Register        func(context.Context, domain.Dataset) (domain.Dataset, error)
		Replace         func(context.Context, int, domain.Dataset) (domain.Dataset, error)
		Delete          func(context.Context, int) error
		Publications    func(context.Context, int) ([]domain.Publication, error)
	}
	Calls struct {
		Get             CallLog[struct{ Id int }]
		GetByIdentifier CallLog[struct {
			Platform   domain.Platform
			Identifier string
		}]
		Find         CallLog[struct{ Platforms []domain.Platform }]
		Register     CallLog[struct{ Dataset domain.Dataset }]
		Replace      CallLog[struct {
			Id      int
			Dataset domain.Dataset
		}]
		Delete       CallLog[struct{ Id int }]
		Publications CallLog[struct{ Id int }]
	}
}

func NewDatasetInterface() *DatasetInterface {
	return &DatasetInterface{}
}

var _ kdb.DatasetInterface = &DatasetInterface{}

func (di *DatasetInterface) Get(ctx context.Context, id int) (domain.Dataset, error) {
	di.Calls.Get = append(di.Calls.Get, struct{ Id int }{Id: id})
	if di.Impl.Get != nil {
		return di.Impl.Get(ctx, id)
	}
	panic(errors.New("it should not be called"))
}

func (di *DatasetInterface) GetByIdentifier(ctx context.Context, platform domain.Platform, identifier string) (domain.Dataset, error) {
	di.Calls.GetByIdentifier = append(di.Calls.GetByIdentifier, struct {
		Platform   domain.Platform
		Identifier string
	}{
		Platform: platform, Identifier: identifier,
	})
	if di.Impl.GetByIdentifier != nil {
		return di.Impl.GetByIdentifier(ctx, platform, identifier)
	}
	panic(errors.New("it should not be called"))
}

func (di *DatasetInterface) Find(ctx context.Context, platforms []domain.Platform) ([]domain.Dataset, error) {
	di.Calls.Find = append(di.Calls.Find, struct{ Platforms []domain.Platform }{Platforms: platforms})
	if di.Impl.Find != nil {
		return di.Impl.Find(ctx, platforms)
	}
	panic(errors.New("it should not be called"))
}

func (di *DatasetInterface) Register(ctx context.Context, dataset domain.Dataset) (domain.Dataset, error) {
	di.Calls.Register = append(di.Calls.Register, struct{ Dataset domain.Dataset }{Dataset: dataset})
	if di.Impl.Register != nil {
		return di.Impl.Register(ctx, dataset)
	}
	panic(errors.New("it should not be called"))
}

func (di *DatasetInterface) Replace(ctx context.Context, id int, dataset domain.Dataset) (domain.Dataset, error) {
	di.Calls.Replace = append(di.Calls.Replace, struct {
		Id      int
		Dataset domain.Dataset
	}{
		Id: id, Dataset: dataset,
	})
	if di.Impl.Replace != nil {
		return di.Impl.Replace(ctx, id, dataset)
	}
	panic(errors.New("it should not be called"))
}

func (di *DatasetInterface) Delete(ctx context.Context, id int) error {
	di.Calls.Delete = append(di.Calls.Delete, struct{ Id int }{Id: id})
	if di.Impl.Delete != nil {
		return di.Impl.Delete(ctx, id)
	}
	panic(errors.New("it should not be called"))
}

func (di *DatasetInterface) Publications(ctx context.Context, id int) ([]domain.Publication, error) {
	di.Calls.Publications = append(di.Calls.Publications, struct{ Id int }{Id: id})
	if di.Impl.Publications != nil {
		return di.Impl.Publications(ctx, id)
	}
	panic(errors.New("it should not be called"))
}

type PublicationInterface struct {
	Impl struct {
		Get      func(context.Context, int) (domain.Publication, error)
		Find     func(context.Context) ([]domain.Publication, error)
		Register func(context.Context, domain.Publication) (domain.Publication, error)
		Delete   func(context.Context, int) error
		Datasets func(context.Context, int) ([]domain.Dataset, error)
	}
	Calls struct {
		Get      CallLog[struct{ Id int }]
		Find     CallLog[struct{}]
		Register CallLog[struct{ Publication domain.Publication }]
		Delete   CallLog[struct{ Id int }]
		Datasets CallLog[struct{ Id int }]
	}
}

func NewPublicationInterface() *PublicationInterface {
	return &PublicationInterface{}
}

var _ kdb.PublicationInterface = &PublicationInterface{}

func (pi *PublicationInterface) Get(ctx context.Context, id int) (domain.Publication, error) {
	pi.Calls.Get = append(pi.Calls.Get, struct{ Id int }{Id: id})
	if pi.Impl.Get != nil {
		return pi.Impl.Get(ctx, id)
	}
	panic(errors.New("it should not be called"))
}

func (pi *PublicationInterface) Find(ctx context.Context) ([]domain.Publication, error) {
	pi.Calls.Find = append(pi.Calls.Find, struct{}{})
	if pi.Impl.Find != nil {
		return pi.Impl.Find(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (pi *PublicationInterface) Register(ctx context.Context, publication domain.Publication) (domain.Publication, error) {
	pi.Calls.Register = append(pi.Calls.Register, struct{ Publication domain.Publication }{Publication: publication})
	if pi.Impl.Register != nil {
		return pi.Impl.Register(ctx, publication)
	}
	panic(errors.New("it should not be called"))
}

func (pi *PublicationInterface) Delete(ctx context.Context, id int) error {
	pi.Calls.Delete = append(pi.Calls.Delete, struct{ Id int }{Id: id})
	if pi.Impl.Delete != nil {
		return pi.Impl.Delete(ctx, id)
	}
	panic(errors.New("it should not be called"))
}

func (pi *PublicationInterface) Datasets(ctx context.Context, id int) ([]domain.Dataset, error) {
	pi.Calls.Datasets = append(pi.Calls.Datasets, struct{ Id int }{Id: id})
	if pi.Impl.Datasets != nil {
		return pi.Impl.Datasets(ctx, id)
	}
	panic(errors.New("it should not be called"))
}

type LinkInterface struct {
	Impl struct {
		Link   func(context.Context, int, int) error
		Unlink func(context.Context, int, int) error
	}
	Calls struct {
		Link CallLog[struct {
			DatasetId     int
			PublicationId int
		}]
		Unlink CallLog[struct {
			DatasetId     int
			PublicationId int
		}]
	}
}

func NewLinkInterface() *LinkInterface {
	return &LinkInterface{}
}

var _ kdb.LinkInterface = &LinkInterface{}

func (li *LinkInterface) Link(ctx context.Context, datasetId int, publicationId int) error {
	li.Calls.Link = append(li.Calls.Link, struct {
		DatasetId     int
		PublicationId int
	}{
		DatasetId: datasetId, PublicationId: publicationId,
	})
	if li.Impl.Link != nil {
		return li.Impl.Link(ctx, datasetId, publicationId)
	}
	panic(errors.New("it should not be called"))
}

func (li *LinkInterface) Unlink(ctx context.Context, datasetId int, publicationId int) error {
	li.Calls.Unlink = append(li.Calls.Unlink, struct {
		DatasetId     int
		PublicationId int
	}{
		DatasetId: datasetId, PublicationId: publicationId,
	})
	if li.Impl.Unlink != nil {
		return li.Impl.Unlink(ctx, datasetId, publicationId)
	}
	panic(errors.New("it should not be called"))
}
