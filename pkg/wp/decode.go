package wp

import (
	"sitescan/pkg/domain"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// DecodeValidateResult decodes the body of a successful validation response:
//
//	{"revalidated": bool, "validated_url_post": {...}, "results": [{"error": {...}}]}
//
// A body without a results array is rejected.
func DecodeValidateResult(body []byte) (*ValidateResult, error) {
	var (
		res        ValidateResult
		hasResults bool
	)

	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "revalidated":
			if d.Next() == jx.Null {
				return d.Null()
			}
			v, err := d.Bool()
			if err != nil {
				return errors.Wrap(err, "revalidated")
			}
			res.Revalidated = v
		case "validated_url_post":
			post, err := decodeValidatedURLPost(d)
			if err != nil {
				return errors.Wrap(err, "validated_url_post")
			}
			res.ValidatedURLPost = post
		case "results":
			hasResults = true
			res.ValidationErrors = []domain.ValidationError{}
			if err := d.Arr(func(d *jx.Decoder) error {
				return d.Obj(func(d *jx.Decoder, key string) error {
					if key != "error" {
						return d.Skip()
					}
					ve, err := decodeValidationError(d)
					if err != nil {
						return err
					}
					res.ValidationErrors = append(res.ValidationErrors, ve)

					return nil
				})
			}); err != nil {
				return errors.Wrap(err, "results")
			}
		default:
			return d.Skip()
		}

		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode validate result")
	}
	if !hasResults {
		return nil, errors.New("validate result has no results")
	}

	return &res, nil
}

func decodeValidatedURLPost(d *jx.Decoder) (*domain.ValidatedURLPost, error) {
	if d.Next() == jx.Null {
		return nil, d.Null()
	}

	var post domain.ValidatedURLPost
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			v, err := d.Int64()
			if err != nil {
				return errors.Wrap(err, "id")
			}
			post.ID = v
		case "edit_link":
			v, err := decodeOptionalStr(d)
			if err != nil {
				return errors.Wrap(err, "edit_link")
			}
			post.EditLink = v
		default:
			return d.Skip()
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return &post, nil
}

func decodeValidationError(d *jx.Decoder) (domain.ValidationError, error) {
	var ve domain.ValidationError
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "code":
			ve.Code, err = decodeOptionalStr(d)
		case "type":
			ve.Type, err = decodeOptionalStr(d)
		case "node_name":
			ve.NodeName, err = decodeOptionalStr(d)
		case "node_type":
			if d.Next() != jx.Number {
				return d.Skip()
			}
			ve.NodeType, err = d.Int()
		case "sources":
			if d.Next() != jx.Array {
				return d.Skip()
			}
			err = d.Arr(func(d *jx.Decoder) error {
				src, err := decodeSource(d)
				if err != nil {
					return err
				}
				ve.Sources = append(ve.Sources, src)

				return nil
			})
		default:
			return d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, key)
		}

		return nil
	})
	if err != nil {
		return domain.ValidationError{}, errors.Wrap(err, "error")
	}

	return ve, nil
}

func decodeSource(d *jx.Decoder) (domain.ValidationErrorSource, error) {
	var src domain.ValidationErrorSource
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "type":
			var s string
			s, err = decodeOptionalStr(d)
			src.Type = domain.SourceType(s)
		case "name":
			src.Name, err = decodeOptionalStr(d)
		case "function":
			src.Function, err = decodeOptionalStr(d)
		default:
			return d.Skip()
		}

		return err
	})

	return src, err
}

// decodeOptionalStr reads a string, treating null and non-string scalars as
// the empty string.
func decodeOptionalStr(d *jx.Decoder) (string, error) {
	if d.Next() != jx.String {
		return "", d.Skip()
	}

	return d.Str()
}

// decodeResponseError builds a *ResponseError from a non-2xx body. Bodies that
// are not REST error objects leave Code empty.
func decodeResponseError(status int, body []byte) *ResponseError {
	rerr := &ResponseError{StatusCode: status}

	d := jx.DecodeBytes(body)
	if d.Next() != jx.Object {
		return rerr
	}
	_ = d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "code":
			rerr.Code, err = decodeOptionalStr(d)
		case "message":
			rerr.Message, err = decodeOptionalStr(d)
		default:
			return d.Skip()
		}

		return err
	})

	return rerr
}
