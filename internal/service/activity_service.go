package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"pfolio_backend/internal/model"
	"pfolio_backend/internal/repository"
	"pfolio_backend/internal/util"
	"pfolio_backend/pkg/logger"
	"pfolio_backend/pkg/monitoring"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Analyzer turns a PDF into a short summary. Implementations never fail;
// see AIService.
type Analyzer interface {
	Analyze(ctx context.Context, pdf []byte) Summary
}

// ProofStore keeps uploaded proofs and hands back an opaque reference.
type ProofStore interface {
	Store(ctx context.Context, objectName string, data []byte, contentType string) string
	Remove(ctx context.Context, ref string)
}

// ProofFile is an uploaded proof with its declared media type.
type ProofFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type PracticeInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required"`
}

type SeminarInput struct {
	Title    string `json:"title" validate:"required"`
	FromDate string `json:"fromDate" validate:"required"`
	ToDate   string `json:"toDate" validate:"required"`
}

// Activities is a teacher's own practices and seminars.
type Activities struct {
	Practices []model.Practice `json:"practices"`
	Seminars  []model.Seminar  `json:"seminars"`
}

// ActivityService runs the practice/seminar submission flow:
// validate, optionally analyse and store the proof, build, commit.
type ActivityService struct {
	store         *repository.Store
	analyzer      Analyzer
	proofs        ProofStore
	validate      *validator.Validate
	maxProofBytes int64
}

func NewActivityService(store *repository.Store, analyzer Analyzer, proofs ProofStore, maxProofBytes int64) *ActivityService {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &ActivityService{
		store:         store,
		analyzer:      analyzer,
		proofs:        proofs,
		validate:      validate,
		maxProofBytes: maxProofBytes,
	}
}

func (s *ActivityService) ListOwn(owner *model.User) Activities {
	return Activities{
		Practices: s.store.PracticesByTeacher(owner.ID),
		Seminars:  s.store.SeminarsByTeacher(owner.ID),
	}
}

func (s *ActivityService) SubmitPractice(ctx context.Context, owner *model.User, in PracticeInput, proof *ProofFile) (*model.Practice, error) {
	if err := s.precheck(owner, in, proof); err != nil {
		return nil, err
	}

	p := model.Practice{
		ID:          model.NewID(),
		TeacherID:   owner.ID,
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
	}
	if proof != nil {
		p.ProofURL, p.ExtractedContent = s.attachProof(ctx, owner.ID, p.ID, proof)
	}

	s.store.AddPractice(p)
	monitoring.ActivityMutations.WithLabelValues(string(model.KindPractice), "create").Inc()
	logger.Log.Info("Practice committed",
		zap.String("id", p.ID),
		zap.String("teacher_id", p.TeacherID),
		zap.Bool("proof", p.HasProof()),
	)
	return &p, nil
}

// UpdatePractice replaces an owned practice. Without a new proof the old
// proof reference and summary are kept. An unknown id is a no-op and
// returns nil.
func (s *ActivityService) UpdatePractice(ctx context.Context, owner *model.User, id string, in PracticeInput, proof *ProofFile) (*model.Practice, error) {
	if err := s.precheck(owner, in, proof); err != nil {
		return nil, err
	}

	existing, found := s.store.FindPractice(id)
	if found && existing.TeacherID != owner.ID {
		return nil, util.ErrPermissionDenied
	}

	p := model.Practice{
		ID:               id,
		TeacherID:        owner.ID,
		Title:            in.Title,
		Description:      in.Description,
		Date:             in.Date,
		ProofURL:         existing.ProofURL,
		ExtractedContent: existing.ExtractedContent,
	}
	if !found {
		s.store.UpdatePractice(p)
		return nil, nil
	}

	if proof != nil {
		p.ProofURL, p.ExtractedContent = s.attachProof(ctx, owner.ID, p.ID, proof)
		if existing.HasProof() && existing.ProofURL != p.ProofURL {
			s.proofs.Remove(ctx, existing.ProofURL)
		}
	}

	s.store.UpdatePractice(p)
	monitoring.ActivityMutations.WithLabelValues(string(model.KindPractice), "update").Inc()
	return &p, nil
}

func (s *ActivityService) DeletePractice(ctx context.Context, owner *model.User, id string) error {
	existing, found := s.store.FindPractice(id)
	if found && existing.TeacherID != owner.ID {
		return util.ErrPermissionDenied
	}

	s.store.DeletePractice(id)
	if found {
		if existing.HasProof() {
			s.proofs.Remove(ctx, existing.ProofURL)
		}
		monitoring.ActivityMutations.WithLabelValues(string(model.KindPractice), "delete").Inc()
	}
	return nil
}

func (s *ActivityService) SubmitSeminar(ctx context.Context, owner *model.User, in SeminarInput, proof *ProofFile) (*model.Seminar, error) {
	if err := s.precheck(owner, in, proof); err != nil {
		return nil, err
	}

	sem := model.Seminar{
		ID:        model.NewID(),
		TeacherID: owner.ID,
		Title:     in.Title,
		FromDate:  in.FromDate,
		ToDate:    in.ToDate,
	}
	if proof != nil {
		sem.ProofURL, sem.ExtractedContent = s.attachProof(ctx, owner.ID, sem.ID, proof)
	}

	s.store.AddSeminar(sem)
	monitoring.ActivityMutations.WithLabelValues(string(model.KindSeminar), "create").Inc()
	logger.Log.Info("Seminar committed",
		zap.String("id", sem.ID),
		zap.String("teacher_id", sem.TeacherID),
		zap.Bool("proof", sem.HasProof()),
	)
	return &sem, nil
}

func (s *ActivityService) UpdateSeminar(ctx context.Context, owner *model.User, id string, in SeminarInput, proof *ProofFile) (*model.Seminar, error) {
	if err := s.precheck(owner, in, proof); err != nil {
		return nil, err
	}

	existing, found := s.store.FindSeminar(id)
	if found && existing.TeacherID != owner.ID {
		return nil, util.ErrPermissionDenied
	}

	sem := model.Seminar{
		ID:               id,
		TeacherID:        owner.ID,
		Title:            in.Title,
		FromDate:         in.FromDate,
		ToDate:           in.ToDate,
		ProofURL:         existing.ProofURL,
		ExtractedContent: existing.ExtractedContent,
	}
	if !found {
		s.store.UpdateSeminar(sem)
		return nil, nil
	}

	if proof != nil {
		sem.ProofURL, sem.ExtractedContent = s.attachProof(ctx, owner.ID, sem.ID, proof)
		if existing.HasProof() && existing.ProofURL != sem.ProofURL {
			s.proofs.Remove(ctx, existing.ProofURL)
		}
	}

	s.store.UpdateSeminar(sem)
	monitoring.ActivityMutations.WithLabelValues(string(model.KindSeminar), "update").Inc()
	return &sem, nil
}

func (s *ActivityService) DeleteSeminar(ctx context.Context, owner *model.User, id string) error {
	existing, found := s.store.FindSeminar(id)
	if found && existing.TeacherID != owner.ID {
		return util.ErrPermissionDenied
	}

	s.store.DeleteSeminar(id)
	if found {
		if existing.HasProof() {
			s.proofs.Remove(ctx, existing.ProofURL)
		}
		monitoring.ActivityMutations.WithLabelValues(string(model.KindSeminar), "delete").Inc()
	}
	return nil
}

// precheck covers every rejection path of a submission. Nothing has been
// analysed or stored when it fails.
func (s *ActivityService) precheck(owner *model.User, in interface{}, proof *ProofFile) error {
	if err := s.validateInput(in); err != nil {
		return err
	}
	if owner == nil || !owner.IsTeacher() {
		return util.ErrNotTeacher
	}
	if proof == nil {
		return nil
	}
	if !util.IsPDF(proof.ContentType) {
		monitoring.RejectedProofs.Inc()
		return fmt.Errorf("%w: got %q", util.ErrInvalidProofType, proof.ContentType)
	}
	return s.CheckProofSize(int64(len(proof.Data)))
}

// MaxProofBytes is the proof size limit, 0 when unlimited.
func (s *ActivityService) MaxProofBytes() int64 {
	return s.maxProofBytes
}

// CheckProofSize rejects a proof of size bytes over the limit. Callers can
// use it before reading an upload.
func (s *ActivityService) CheckProofSize(size int64) error {
	if s.maxProofBytes > 0 && size > s.maxProofBytes {
		monitoring.RejectedProofs.Inc()
		return fmt.Errorf("%w: %d bytes, limit %d", util.ErrProofTooLarge, size, s.maxProofBytes)
	}
	return nil
}

func (s *ActivityService) validateInput(in interface{}) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Field()+" is "+fe.Tag())
	}
	return fmt.Errorf("%w: %s", util.ErrValidation, strings.Join(msgs, ", "))
}

// attachProof awaits the analysis and stores the document. Both steps are
// best effort and always yield values.
func (s *ActivityService) attachProof(ctx context.Context, ownerID, recordID string, proof *ProofFile) (string, string) {
	summary := s.analyzer.Analyze(ctx, proof.Data)
	if summary.Fallback {
		logger.Log.Debug("Proof summary fell back", zap.String("record_id", recordID), zap.String("text", summary.Text))
	}

	ref := s.proofs.Store(ctx, util.ProofObjectName(ownerID, recordID, proof.Filename), proof.Data, util.MimePDF)
	return ref, summary.Text
}
