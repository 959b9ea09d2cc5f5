// Package dtos holds the request and response shapes of the master
// data API.
package dtos

import (
	"fmt"
	"strings"
)

type CreateSegmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *CreateSegmentRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

type CreateDomainGroupRequest struct {
	IndustrySegment string `json:"industrySegment"`
	Name            string `json:"name"`
}

func (r *CreateDomainGroupRequest) Validate() error {
	if strings.TrimSpace(r.IndustrySegment) == "" || strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("industrySegment and name are required")
	}
	return nil
}

type CreateCategoryRequest struct {
	IndustrySegment string `json:"industrySegment"`
	DomainGroup     string `json:"domainGroup"`
	Name            string `json:"name"`
}

func (r *CreateCategoryRequest) Validate() error {
	if strings.TrimSpace(r.IndustrySegment) == "" ||
		strings.TrimSpace(r.DomainGroup) == "" ||
		strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("industrySegment, domainGroup and name are required")
	}
	return nil
}

type CreateSubCategoryRequest struct {
	IndustrySegment string `json:"industrySegment"`
	DomainGroup     string `json:"domainGroup"`
	Category        string `json:"category"`
	Name            string `json:"name"`
}

func (r *CreateSubCategoryRequest) Validate() error {
	if strings.TrimSpace(r.IndustrySegment) == "" ||
		strings.TrimSpace(r.DomainGroup) == "" ||
		strings.TrimSpace(r.Category) == "" ||
		strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("industrySegment, domainGroup, category and name are required")
	}
	return nil
}
