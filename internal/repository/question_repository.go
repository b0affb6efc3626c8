package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mjaja25/exam-website-backend/internal/model"
)

// QuestionRepository handles the static question banks: typing passages,
// letter prompts, and spreadsheet tasks.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ─── Passages ───────────────────────────────────────────────────────────────

func (r *QuestionRepository) CreatePassage(ctx context.Context, p *model.Passage) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO passages (title, content) VALUES ($1, $2)
		 RETURNING id, created_at`,
		p.Title, p.Content,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *QuestionRepository) ListPassages(ctx context.Context) ([]model.Passage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, content, created_at FROM passages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passages []model.Passage
	for rows.Next() {
		var p model.Passage
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt); err != nil {
			return nil, err
		}
		passages = append(passages, p)
	}
	return passages, rows.Err()
}

// RandomPassage serves one passage at random for a typing test.
func (r *QuestionRepository) RandomPassage(ctx context.Context) (*model.Passage, error) {
	p := &model.Passage{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, content, created_at FROM passages ORDER BY random() LIMIT 1`,
	).Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *QuestionRepository) DeletePassage(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM passages WHERE id = $1`, id)
	return err
}

// ─── Letter questions ───────────────────────────────────────────────────────

func (r *QuestionRepository) CreateLetterQuestion(ctx context.Context, q *model.LetterQuestion) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO letter_questions (question) VALUES ($1)
		 RETURNING id, created_at`,
		q.Question,
	).Scan(&q.ID, &q.CreatedAt)
}

func (r *QuestionRepository) GetLetterQuestion(ctx context.Context, id uuid.UUID) (*model.LetterQuestion, error) {
	q := &model.LetterQuestion{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, question, created_at FROM letter_questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.Question, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *QuestionRepository) RandomLetterQuestion(ctx context.Context) (*model.LetterQuestion, error) {
	q := &model.LetterQuestion{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, question, created_at FROM letter_questions ORDER BY random() LIMIT 1`,
	).Scan(&q.ID, &q.Question, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *QuestionRepository) ListLetterQuestions(ctx context.Context) ([]model.LetterQuestion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question, created_at FROM letter_questions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.LetterQuestion
	for rows.Next() {
		var q model.LetterQuestion
		if err := rows.Scan(&q.ID, &q.Question, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *QuestionRepository) DeleteLetterQuestion(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM letter_questions WHERE id = $1`, id)
	return err
}

// ─── Excel questions ────────────────────────────────────────────────────────

func (r *QuestionRepository) CreateExcelQuestion(ctx context.Context, q *model.ExcelQuestion) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO excel_questions (name, question, solution_file_path)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		q.Name, q.Question, q.SolutionFilePath,
	).Scan(&q.ID, &q.CreatedAt)
}

func (r *QuestionRepository) GetExcelQuestion(ctx context.Context, id uuid.UUID) (*model.ExcelQuestion, error) {
	q := &model.ExcelQuestion{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, question, solution_file_path, created_at
		 FROM excel_questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.Name, &q.Question, &q.SolutionFilePath, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *QuestionRepository) RandomExcelQuestion(ctx context.Context) (*model.ExcelQuestion, error) {
	q := &model.ExcelQuestion{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, question, solution_file_path, created_at
		 FROM excel_questions ORDER BY random() LIMIT 1`,
	).Scan(&q.ID, &q.Name, &q.Question, &q.SolutionFilePath, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *QuestionRepository) ListExcelQuestions(ctx context.Context) ([]model.ExcelQuestion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, question, solution_file_path, created_at
		 FROM excel_questions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.ExcelQuestion
	for rows.Next() {
		var q model.ExcelQuestion
		if err := rows.Scan(&q.ID, &q.Name, &q.Question, &q.SolutionFilePath, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *QuestionRepository) DeleteExcelQuestion(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM excel_questions WHERE id = $1`, id)
	return err
}
