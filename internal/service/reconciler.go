package service

import (
	"context"
	"time"

	"github.com/dealdesk/dealdesk/internal/api/dto"
	"github.com/dealdesk/dealdesk/internal/domain/contract"
	"github.com/dealdesk/dealdesk/internal/domain/product"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// reconcileLineItems makes the persisted line items of c match the desired
// set, adjusting product stock and sales for the difference. Desired entries
// without a persisted counterpart reserve stock; persisted items missing
// from the desired set release it; count changes adjust by the delta and
// re-snapshot the product's current name and price.
//
// Must run inside a transaction: products are locked row by row, and any
// failure (insufficient stock, vanished product on add) aborts the whole
// batch. A product that vanished under a removed item only skips the stock
// release; the item itself is still deleted.
func (s *contractService) reconcileLineItems(ctx context.Context, c *contract.Contract, desired []dto.ContractLineItemRequest) error {
	current, err := s.LineItemRepo.ListByContract(ctx, c.ID)
	if err != nil {
		return err
	}

	currentByProduct := lo.KeyBy(current, func(item *contract.LineItem) string {
		return item.ProductID
	})
	desiredProducts := lo.SliceToMap(desired, func(req dto.ContractLineItemRequest) (string, struct{}) {
		return req.ProductID, struct{}{}
	})

	// desired order drives adds and changes so failures are deterministic
	for _, req := range desired {
		existing, ok := currentByProduct[req.ProductID]
		if !ok {
			if err := s.addLineItem(ctx, c, req); err != nil {
				return err
			}
			continue
		}
		if existing.Count != req.Count {
			if err := s.changeLineItem(ctx, existing, req.Count); err != nil {
				return err
			}
		}
	}

	for _, item := range current {
		if _, ok := desiredProducts[item.ProductID]; ok {
			continue
		}
		if err := s.removeLineItem(ctx, item); err != nil {
			return err
		}
	}

	return nil
}

func (s *contractService) addLineItem(ctx context.Context, c *contract.Contract, req dto.ContractLineItemRequest) error {
	p, err := s.ProductRepo.GetForUpdate(ctx, req.ProductID)
	if err != nil {
		return err
	}

	if err := s.reserveStock(ctx, p, req.Count); err != nil {
		return err
	}

	item := &contract.LineItem{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CONTRACT_LINE_ITEM),
		ContractID:  c.ID,
		ProductID:   p.ID,
		ProductName: p.Name,
		UnitPrice:   p.Price,
		Count:       req.Count,
		Total:       p.Price.Mul(decimalFromInt(req.Count)),
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	return s.LineItemRepo.Create(ctx, item)
}

func (s *contractService) changeLineItem(ctx context.Context, item *contract.LineItem, newCount int) error {
	p, err := s.ProductRepo.GetForUpdate(ctx, item.ProductID)
	if err != nil {
		return err
	}

	delta := newCount - item.Count
	if delta > 0 {
		if err := s.reserveStock(ctx, p, delta); err != nil {
			return err
		}
	} else {
		if err := s.releaseStock(ctx, p, -delta); err != nil {
			return err
		}
	}

	item.Count = newCount
	item.ProductName = p.Name
	item.UnitPrice = p.Price
	item.Total = p.Price.Mul(decimalFromInt(newCount))
	item.UpdatedAt = time.Now().UTC()
	item.UpdatedBy = types.GetUserID(ctx)
	return s.LineItemRepo.Update(ctx, item)
}

func (s *contractService) removeLineItem(ctx context.Context, item *contract.LineItem) error {
	p, err := s.ProductRepo.GetForUpdate(ctx, item.ProductID)
	switch {
	case ierr.IsNotFound(err):
		// product is gone, nothing to release; still drop the item
		s.Logger.Warnw("releasing line item for missing product",
			"contract_id", item.ContractID,
			"product_id", item.ProductID,
		)
	case err != nil:
		return err
	default:
		if err := s.releaseStock(ctx, p, item.Count); err != nil {
			return err
		}
	}

	return s.LineItemRepo.Delete(ctx, item.ID)
}

// reserveStock moves count units from stock to sales, failing the whole
// reconciliation when not enough stock is available.
func (s *contractService) reserveStock(ctx context.Context, p *product.Product, count int) error {
	if count > p.Stock {
		return ierr.NewError("insufficient stock").
			WithHintf("Product %s has %d units in stock, %d requested", p.Name, p.Stock, count).
			WithReportableDetails(map[string]any{
				"product_id": p.ID,
				"available":  p.Stock,
				"requested":  count,
			}).
			Mark(ierr.ErrInsufficientStock)
	}

	p.Stock -= count
	p.Sales += count
	p.UpdatedAt = time.Now().UTC()
	p.UpdatedBy = types.GetUserID(ctx)
	return s.ProductRepo.Update(ctx, p)
}

// releaseStock returns count units from sales back to stock.
func (s *contractService) releaseStock(ctx context.Context, p *product.Product, count int) error {
	p.Stock += count
	p.Sales -= count
	p.UpdatedAt = time.Now().UTC()
	p.UpdatedBy = types.GetUserID(ctx)
	return s.ProductRepo.Update(ctx, p)
}
