package models

import "time"

// User roles. Stored in the user_types table and embedded in JWT claims.
const (
	RoleClient = "CLIENT"
	RoleAdmin  = "ADMIN"
)

// Report statuses. No transition table is enforced: an admin may move a
// report between any two statuses.
const (
	ReportPending  = "PENDING"
	ReportAnalyzed = "ANALYZED"
	ReportAccepted = "ACCEPTED"
	ReportRejected = "REJECTED"
)

// Vote actions reported by the voting endpoint.
const (
	VoteActionCreated = "created"
	VoteActionRemoved = "removed"
)

const (
	MaxCommentLength = 1000
	MaxReasonLength  = 500
)

// Entities

type UserType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"uniqueIndex;size:50;not null" json:"nome"`
}

type User struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Username string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email    string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string    `gorm:"size:72;not null" json:"-"` // bcrypt hash
	TipoID   uint      `gorm:"not null" json:"tipoId"`
	Tipo     *UserType `gorm:"foreignKey:TipoID" json:"tipo,omitempty"`
	Ativo    bool      `gorm:"not null" json:"ativo"`
	CriadoEm time.Time `gorm:"autoCreateTime" json:"criadoEm"`
}

type Poll struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Titulo    string    `gorm:"size:200;not null" json:"titulo"`
	Descricao string    `gorm:"size:2000;not null" json:"descricao"`
	DataFim   time.Time `gorm:"not null" json:"dataFim"`
	// No column default: a bool default would make gorm drop explicit false
	// values on create. Every create path sets the flag.
	Ativa bool `gorm:"not null;index" json:"ativa"`
	AutorID   uint      `gorm:"not null;index" json:"autorId"`
	Autor     *User     `gorm:"foreignKey:AutorID" json:"autor,omitempty"`
	Opcoes    []Option  `gorm:"foreignKey:EnqueteID;constraint:OnDelete:CASCADE" json:"opcoes,omitempty"`
	CriadoEm  time.Time `gorm:"autoCreateTime" json:"criadoEm"`
}

type Option struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Texto     string `gorm:"size:200;not null" json:"texto"`
	EnqueteID uint   `gorm:"not null;index" json:"enqueteId"`
}

// Vote references an Option, not a Poll; the poll is only reachable through
// the option. The unique index blocks a duplicate row for the same
// (user, option) pair; the cross-option rule lives in handlers.CastVote.
type Vote struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_votos_user_opcao" json:"userId"`
	OpcaoID  uint      `gorm:"not null;uniqueIndex:idx_votos_user_opcao" json:"opcaoId"`
	Opcao    *Option   `gorm:"foreignKey:OpcaoID;constraint:OnDelete:CASCADE" json:"opcao,omitempty"`
	CriadoEm time.Time `gorm:"autoCreateTime" json:"criadoEm"`
}

type Comment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Texto     string     `gorm:"size:1000;not null" json:"texto"`
	UserID    uint       `gorm:"not null;index" json:"userId"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	EnqueteID uint       `gorm:"not null;index" json:"enqueteId"`
	Enquete   *Poll      `gorm:"foreignKey:EnqueteID;constraint:OnDelete:CASCADE" json:"-"`
	Ativo     bool       `gorm:"not null" json:"ativo"`
	CriadoEm  time.Time  `gorm:"autoCreateTime" json:"criadoEm"`
	EditadoEm *time.Time `json:"editadoEm,omitempty"`
}

type Report struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_denuncias_user_enquete" json:"userId"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	EnqueteID  uint       `gorm:"not null;uniqueIndex:idx_denuncias_user_enquete" json:"enqueteId"`
	Enquete    *Poll      `gorm:"foreignKey:EnqueteID;constraint:OnDelete:CASCADE" json:"enquete,omitempty"`
	Motivo     *string    `gorm:"size:500" json:"motivo,omitempty"`
	Status     string     `gorm:"size:20;not null;default:PENDING;index" json:"status"`
	CriadoEm   time.Time  `gorm:"autoCreateTime" json:"criadoEm"`
	RevisadoEm *time.Time `json:"revisadoEm,omitempty"`
}

// TableName overrides keep table names aligned with the API vocabulary.
func (Poll) TableName() string    { return "enquetes" }
func (Option) TableName() string  { return "opcoes" }
func (Vote) TableName() string    { return "votos" }
func (Comment) TableName() string { return "comentarios" }
func (Report) TableName() string  { return "denuncias" }

// Request types

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=CLIENT ADMIN"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6,max=72"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=CLIENT ADMIN"`
}

// Opcoes may arrive as a JSON array of strings or as a single
// newline-delimited string; RawOptions accepts both.
type CreatePollRequest struct {
	Titulo    string     `json:"titulo" validate:"required,max=200"`
	Descricao string     `json:"descricao" validate:"required,max=2000"`
	DataFim   time.Time  `json:"dataFim" validate:"required"`
	Opcoes    RawOptions `json:"opcoes" validate:"required"`
}

type CreateCommentRequest struct {
	EnqueteID uint   `json:"enqueteId" validate:"required"`
	Texto     string `json:"texto" validate:"required"`
}

type UpdateCommentRequest struct {
	Texto string `json:"texto" validate:"required"`
}

type CreateReportRequest struct {
	EnqueteID uint    `json:"enqueteId" validate:"required"`
	Motivo    *string `json:"motivo" validate:"omitempty,max=500"`
}

type UpdateReportStatusRequest struct {
	Status           string `json:"status" validate:"required,oneof=PENDING ANALYZED ACCEPTED REJECTED"`
	DesativarEnquete bool   `json:"desativarEnquete"`
}

// Response types

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"userId"`
	TipoID  uint   `json:"tipoId"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserSummary `json:"user"`
}

type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsAdmin  bool   `json:"isAdmin"`
}

type AuthorSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type OptionResult struct {
	ID    uint   `json:"id"`
	Texto string `json:"texto"`
	Votos int64  `json:"votos"`
}

type PollResult struct {
	ID         uint           `json:"id"`
	Titulo     string         `json:"titulo"`
	Descricao  string         `json:"descricao"`
	DataFim    time.Time      `json:"dataFim"`
	Ativa      bool           `json:"ativa"`
	Autor      AuthorSummary  `json:"autor"`
	Opcoes     []OptionResult `json:"opcoes"`
	TotalVotos int64          `json:"totalVotos"`
	CriadoEm   time.Time      `json:"criadoEm"`
}

type VoteResponse struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	OpcaoID uint   `json:"opcaoId"`
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type CommentListResponse struct {
	Comentarios []Comment  `json:"comentarios"`
	Pagination  Pagination `json:"pagination"`
}

type ReportListResponse struct {
	Denuncias  []Report   `json:"denuncias"`
	Pagination Pagination `json:"pagination"`
}

type ReportStatusResponse struct {
	Message           string `json:"message"`
	Updated           bool   `json:"updated"`
	EnqueteDesativada bool   `json:"enqueteDesativada"`
}

type ReportSummary struct {
	Pendentes  int64 `json:"pendentes"`
	Analisadas int64 `json:"analisadas"`
	Aceitas    int64 `json:"aceitas"`
	Rejeitadas int64 `json:"rejeitadas"`
	Total      int64 `json:"total"`
}

type ReportedPoll struct {
	ID             uint   `json:"id"`
	Titulo         string `json:"titulo"`
	Ativa          bool   `json:"ativa"`
	TotalDenuncias int64  `json:"totalDenuncias"`
}

type ReportDashboardResponse struct {
	Summary                 ReportSummary  `json:"summary"`
	EnquetesMaisDenunciadas []ReportedPoll `json:"enquetesMaisDenunciadas"`
}

// Error response body shared by all endpoints.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}
