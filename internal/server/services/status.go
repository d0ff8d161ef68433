package services

// Status describes the running server. It carries no secrets.
type Status struct {
	Status     string
	Server     string
	Version    string
	Encryption string
	Address    string
}

type StatusService struct {
	address string
}

func NewStatusService(address string) *StatusService {
	return &StatusService{address: address}
}

func (s *StatusService) Status() Status {
	return Status{
		Status:     "online",
		Server:     "CYBER VAULT",
		Version:    "2.0",
		Encryption: "Fernet (AES-128-CBC)",
		Address:    s.address,
	}
}
