package pipeline

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	validationFailedCode = "CONTENT_VALIDATION_FAILED"
	reconcileFailedCode  = "CONTENT_RECONCILE_FAILED"
	renderFailedCode     = "CONTENT_RENDER_FAILED"
	parseFailedCode      = "CONTENT_PARSE_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "content validation failed").
		WithTextCode(validationFailedCode)
}

func wrapParseError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "content parse failed").
		WithTextCode(parseFailedCode)
}

func wrapReconcileError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "content reconcile failed").
		WithTextCode(reconcileFailedCode)
}

func wrapRenderError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "page render failed").
		WithTextCode(renderFailedCode)
}
