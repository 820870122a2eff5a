package api

import (
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// RolesRequiredField names the status detail field listing the roles a
// PermissionDenied call would have needed.
const RolesRequiredField = "roles_required"

// RolesRequiredDetail builds the PermissionDenied detail for roles.
func RolesRequiredDetail(roles []string) (*structpb.Struct, error) {
	list := make([]any, len(roles))
	for i, r := range roles {
		list[i] = r
	}
	return structpb.NewStruct(map[string]any{RolesRequiredField: list})
}

// RolesRequired pulls the roles_required detail out of a status error. It
// returns nil when there is none.
func RolesRequired(err error) []string {
	st, ok := status.FromError(err)
	if !ok {
		return nil
	}
	for _, d := range st.Details() {
		s, ok := d.(*structpb.Struct)
		if !ok {
			continue
		}
		list := s.GetFields()[RolesRequiredField].GetListValue()
		if list == nil {
			continue
		}
		var out []string
		for _, v := range list.GetValues() {
			out = append(out, v.GetStringValue())
		}
		return out
	}
	return nil
}
