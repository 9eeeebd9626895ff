package pets

import "context"

// OwnerOf expone el ownerUserID de una mascota.
// Lo usan los módulos que cuelgan de un pet (records, appointments, profile)
// sin depender del modelo completo.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.Get(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}
